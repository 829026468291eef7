//go:build ignore

// Локальный запуск: сервер в фоне и сборка клиента authctl.
//
//	go run launcher.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

const healthURL = "http://127.0.0.1:8080/api/user"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Запуск сервера аутентификации...")

	clientName := "authctl"
	if runtime.GOOS == "windows" {
		clientName = "authctl.exe"
	}

	server := exec.CommandContext(ctx, "go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr
	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	if err := waitReady(ctx, 30*time.Second); err != nil {
		fmt.Printf("Сервер не поднялся: %v\n", err)
		return
	}

	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/authctl")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
			return
		}
	}

	fmt.Println("Сервер запущен")
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\authctl.exe")
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./authctl")
	}

	server.Wait()
}

// waitReady опрашивает сервер, пока он не ответит или не выйдет таймаут.
func waitReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	t := time.NewTicker(300 * time.Millisecond)
	defer t.Stop()

	for {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if res, err := http.DefaultClient.Do(req); err == nil {
			res.Body.Close()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
