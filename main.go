package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/promptfoundry/prompt-foundry/internal/api"
	"github.com/promptfoundry/prompt-foundry/internal/cli"
	apperrors "github.com/promptfoundry/prompt-foundry/internal/errors"
	"github.com/promptfoundry/prompt-foundry/internal/service"
	"github.com/promptfoundry/prompt-foundry/internal/syncq"
	"github.com/promptfoundry/prompt-foundry/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`prompt-foundry - Template-driven AI prompt generation

USAGE:
    prompt-foundry [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize a new prompt library
    --api           Start the HTTP API server
    --port          Port for the API server (default: 8080)
    --offline       Force offline mode; saves are queued for later sync
    --dir           Library directory (default: ~/.prompt-foundry)

COMMANDS:
    (no command)       Start interactive TUI mode
    templates          List prompt templates
    show <id>          Show a template and its questions
    generate <id>      Generate a prompt document
    list, ls           List saved prompts
    view, get <id>     Show a saved prompt
    delete, rm <id>    Delete a saved prompt
    copy <id>          Copy a saved prompt to the clipboard
    search <query>     Fuzzy search saved prompts
    sync [flush]       Show or drain the offline sync queue
    help               Show CLI command help

EXAMPLES:
    prompt-foundry                                       # Start interactive mode
    prompt-foundry --init                                # Initialize new library
    prompt-foundry --api --port 9000                     # Start API server on port 9000
    prompt-foundry templates                             # List templates
    prompt-foundry generate code-generation \
        --set programming-language=Go \
        --set task-description="Build a CLI" --copy      # Generate and copy
    prompt-foundry generate image-generation \
        --answers answers.yaml --save "Poster idea"      # Generate and save
    prompt-foundry search "blog"                         # Search saved prompts

STORAGE:
    Default directory: ~/.prompt-foundry
    Override with: PROMPT_FOUNDRY_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var apiServer bool
	var port int
	var offline bool
	var dir string

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize a new prompt library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&apiServer, "api", false, "Start the HTTP API server")
	flag.IntVar(&port, "port", 8080, "Port for the API server")
	flag.BoolVar(&offline, "offline", false, "Force offline mode")
	flag.StringVar(&dir, "dir", "", "Library directory")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("prompt-foundry version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.NewService(dir)
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := svc.InitLibrary(); err != nil {
		fmt.Println("Error initializing library:", err)
		return
	}

	if initLib {
		fmt.Printf("Initialized prompt library at %s\n", svc.BaseDir())
		return
	}

	if offline {
		monitor := syncq.NewMonitor()
		monitor.ForceOffline(true)
		svc.SetMonitor(monitor)
	}

	if apiServer {
		fmt.Printf("Starting API server...\n")
		srv := api.NewAPIServer(svc, port)
		if err := srv.Start(); err != nil {
			fmt.Printf("Error starting API server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// CLI mode - execute command and exit
	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			errHandler := apperrors.NewCLIErrorHandler(false)
			fmt.Fprintln(os.Stderr, errHandler.FormatError(err))
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.StartSync(ctx, 30*time.Second)

	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Println(err)
		return
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		return
	}
}
