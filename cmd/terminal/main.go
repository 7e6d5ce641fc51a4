package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/code-critic/internal/apiclient"
	"github.com/sevigo/code-critic/internal/logger"
)

func main() {
	serverFlag := flag.String("server", "", "Review server URL (default $CODE_CRITIC_SERVER or "+apiclient.DefaultBaseURL+")")
	themeFlag := flag.String("theme", "", "UI theme (cyan, matrix, amber, dracula)")
	fileFlag := flag.String("file", "", "Load this file into the editor")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	// stdout belongs to the UI.
	log := logger.NewLogger(logger.Config{Level: "info", Output: "file"}, nil)

	selectedTheme := *themeFlag
	if selectedTheme == "" {
		selectedTheme = os.Getenv("CODE_CRITIC_THEME")
	}
	if selectedTheme == "" {
		selectedTheme = string(ThemeCyan)
	}
	theme := ThemeName(selectedTheme)
	if !validTheme(theme) {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	serverURL := *serverFlag
	if serverURL == "" {
		serverURL = os.Getenv("CODE_CRITIC_SERVER")
	}

	var code string
	if *fileFlag != "" {
		data, err := os.ReadFile(*fileFlag)
		if err != nil {
			fmt.Printf("Failed to read %s: %v\n", *fileFlag, err)
			os.Exit(1)
		}
		code = string(data)
	}

	client := apiclient.New(serverURL)
	log.Info("code-critic terminal starting up", "server", client.BaseURL())

	p := tea.NewProgram(initialModel(theme, client, code), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("error running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Info("code-critic terminal shut down")
}
