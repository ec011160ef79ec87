package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/makeup-catalog/config"
	"github.com/niksmo/makeup-catalog/internal/app"
	"github.com/niksmo/makeup-catalog/pkg/sigctx"
)

const (
	closeTimeout = 5 * time.Second
	logFile      = "catalogtui.log"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()

	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		fmt.Printf("failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	catalogViewer := app.New(sigCtx, cfg, app.LogOutputOpt(f))

	runErr := catalogViewer.RunTerminal(closeApp)

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	catalogViewer.Close(ctx)

	if runErr != nil {
		fmt.Println(runErr)
	}
}
