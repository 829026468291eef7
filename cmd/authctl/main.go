// Package main содержит точку входа CLI-клиента authctl.
//
// Версия и дата сборки задаются через -ldflags:
//
//	go build -ldflags "-X main.buildVersion=1.0.0 -X main.buildDate=2026-01-16" ./cmd/authctl
package main

import "github.com/IvanChernomyrdin/go-yandex-userauth/internal/agent/cli"

var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
