// Package cli provides the headless command-line interface. It drives the
// same service layer as the TUI and the HTTP API, so scripted synthesis
// produces byte-identical documents to the interactive flow.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/promptfoundry/prompt-foundry/internal/models"
	"github.com/promptfoundry/prompt-foundry/internal/service"
	"github.com/promptfoundry/prompt-foundry/internal/synthesizer"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "templates":
		return c.listTemplates(commandArgs)
	case "show":
		return c.showTemplate(commandArgs)
	case "generate", "gen":
		return c.generate(commandArgs)
	case "list", "ls":
		return c.listSaved(commandArgs)
	case "view", "get":
		return c.viewSaved(commandArgs)
	case "delete", "rm":
		return c.deleteSaved(commandArgs)
	case "copy":
		return c.copySaved(commandArgs)
	case "search":
		return c.searchSaved(commandArgs)
	case "sync":
		return c.syncQueue(commandArgs)
	case "help":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

// listTemplates lists the template catalog
func (c *CLI) listTemplates(args []string) error {
	var format string
	for i, arg := range args {
		switch arg {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
			}
		}
	}

	templates := c.service.Templates()

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(templates)
	}

	for _, t := range templates {
		fmt.Printf("%s - %s\n", t.ID, t.Name)
		if t.Description != "" {
			fmt.Printf("  %s\n", t.Description)
		}
		fmt.Println()
	}
	return nil
}

// showTemplate displays a template with its question schema
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a template ID")
	}

	var format string
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	tmpl, err := c.service.Template(args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(tmpl)
	}

	fmt.Printf("ID: %s\n", tmpl.ID)
	fmt.Printf("Name: %s\n", tmpl.Name)
	if tmpl.Description != "" {
		fmt.Printf("Description: %s\n", tmpl.Description)
	}
	fmt.Printf("\nQuestions:\n")
	for _, q := range tmpl.Questions {
		required := ""
		if q.Required {
			required = " (required)"
		}
		fmt.Printf("  %-24s %s%s\n", q.ID, q.Type, required)
		fmt.Printf("    %s\n", q.Label)
		if q.NeedsOptions() || q.Type == models.QuestionCheckbox {
			var values []string
			for _, opt := range q.Options {
				values = append(values, opt.Value)
			}
			if len(values) > 0 {
				fmt.Printf("    Options: %s\n", strings.Join(values, ", "))
			}
		}
		if q.Type == models.QuestionSlider {
			fmt.Printf("    Range: %g-%g step %g\n", q.SliderMin(), q.SliderMax(), q.SliderStep())
		}
	}
	return nil
}

// generate synthesizes a prompt document from a template and answers
func (c *CLI) generate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("generate requires a template ID")
	}

	templateID := args[0]
	var answersFile, initialText, format, saveName string
	var copyOut, save bool
	answers := models.NewAnswerSet()

	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--answers", "-a":
			if i+1 < len(args) {
				answersFile = args[i+1]
				i++
			}
		case "--set", "-s":
			if i+1 < len(args) {
				key, value, err := parseAssignment(args[i+1])
				if err != nil {
					return err
				}
				answers.Set(key, value)
				i++
			}
		case "--text", "-t":
			if i+1 < len(args) {
				initialText = args[i+1]
				i++
			}
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--copy", "-c":
			copyOut = true
		case "--save":
			save = true
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				saveName = args[i+1]
				i++
			}
		}
	}

	if answersFile != "" {
		fileAnswers, err := loadAnswersFile(answersFile)
		if err != nil {
			return err
		}
		// --set assignments override file values but the file's order wins
		// for keys it defines
		for _, key := range answers.Keys() {
			fileAnswers.Set(key, answers.Get(key))
		}
		answers = fileAnswers
	}

	tmpl, err := c.service.Template(templateID)
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	var output string
	if format == "json" {
		output, err = synthesizer.SynthesizeJSON(tmpl, answers, initialText)
		if err != nil {
			return fmt.Errorf("failed to render prompt: %w", err)
		}
	} else {
		output = synthesizer.Synthesize(tmpl, answers, initialText)
	}

	if save {
		saved, err := c.service.SavePromptFor(templateID, saveName, answers, initialText)
		if err != nil {
			return fmt.Errorf("failed to save prompt: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved prompt: %s\n", saved.ID)
	}

	if copyOut {
		if statusMsg, err := c.service.CopyPrompt(output); err != nil {
			fmt.Printf("Warning: %v\n", err)
		} else {
			fmt.Printf("%s\n", statusMsg)
		}
		return nil
	}

	fmt.Print(output)
	return nil
}

// listSaved lists saved prompts, newest first
func (c *CLI) listSaved(args []string) error {
	var format string
	for i, arg := range args {
		switch arg {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
			}
		}
	}

	prompts, err := c.service.ListSaved()
	if err != nil {
		return fmt.Errorf("failed to list prompts: %w", err)
	}

	return c.formatSavedList(prompts, format)
}

// viewSaved displays a saved prompt
func (c *CLI) viewSaved(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("view requires a prompt ID")
	}

	var format string
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	prompt, err := c.service.GetSaved(args[0])
	if err != nil {
		return fmt.Errorf("failed to get prompt: %w", err)
	}

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(prompt)
	}

	fmt.Printf("ID: %s\n", prompt.ID)
	fmt.Printf("Name: %s\n", prompt.Name)
	fmt.Printf("Template: %s\n", prompt.TemplateID)
	fmt.Printf("Created: %s\n", prompt.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("\n%s", prompt.Prompt)
	return nil
}

// deleteSaved removes a saved prompt
func (c *CLI) deleteSaved(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete requires a prompt ID")
	}

	if err := c.service.DeleteSaved(args[0]); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	fmt.Printf("Deleted prompt: %s\n", args[0])
	return nil
}

// copySaved copies a saved prompt's document to the clipboard
func (c *CLI) copySaved(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("copy requires a prompt ID")
	}

	prompt, err := c.service.GetSaved(args[0])
	if err != nil {
		return fmt.Errorf("failed to get prompt: %w", err)
	}

	if statusMsg, err := c.service.CopyPrompt(prompt.Prompt); err != nil {
		fmt.Printf("Warning: %v\n", err)
		fmt.Printf("Content loaded but not copied to clipboard.\n")
	} else {
		fmt.Printf("%s\n", statusMsg)
	}
	return nil
}

// searchSaved fuzzy-searches saved prompts
func (c *CLI) searchSaved(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}

	var format string
	var queryParts []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		default:
			queryParts = append(queryParts, args[i])
		}
	}

	results, err := c.service.SearchSaved(strings.Join(queryParts, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return c.formatSavedList(results, format)
}

// syncQueue reports or drains the offline sync queue
func (c *CLI) syncQueue(args []string) error {
	if len(args) > 0 && args[0] == "flush" {
		n, err := c.service.FlushQueue()
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Printf("Synced %d queued prompts\n", n)
		return nil
	}

	if c.service.PendingSync() {
		fmt.Println("Sync queue has pending prompts. Run 'sync flush' to deliver them.")
	} else {
		fmt.Println("Sync queue is empty.")
	}
	return nil
}

// formatSavedList formats saved prompts for output
func (c *CLI) formatSavedList(prompts []*models.SavedPrompt, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(prompts)
	case "ids":
		for _, p := range prompts {
			fmt.Println(p.ID)
		}
	case "table":
		fmt.Printf("%-38s %-30s %-18s %s\n", "ID", "Name", "Template", "Created")
		fmt.Println(strings.Repeat("-", 100))
		for _, p := range prompts {
			name := p.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			fmt.Printf("%-38s %-30s %-18s %s\n",
				p.ID, name, p.TemplateID, p.CreatedAt.Format("2006-01-02"))
		}
	default:
		for _, p := range prompts {
			fmt.Printf("%s - %s\n", p.ID, p.Name)
			fmt.Printf("  Template: %s\n", p.TemplateID)
			fmt.Println()
		}
	}
	return nil
}

// loadAnswersFile reads answers from a YAML file, preserving key order
func loadAnswersFile(path string) (*models.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	answers := models.NewAnswerSet()
	if err := yaml.Unmarshal(data, answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers file: %w", err)
	}
	return answers, nil
}

// parseAssignment splits a key=value pair and coerces the value. Booleans and
// numbers get their native types; comma-separated values become lists.
func parseAssignment(s string) (string, interface{}, error) {
	idx := strings.IndexByte(s, '=')
	if idx <= 0 {
		return "", nil, fmt.Errorf("invalid --set argument %q, expected key=value", s)
	}
	key := s[:idx]
	raw := s[idx+1:]

	switch raw {
	case "true":
		return key, true, nil
	case "false":
		return key, false, nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return key, n, nil
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts, nil
	}
	return key, raw, nil
}

func (c *CLI) printUsage() error {
	fmt.Println(`prompt-foundry - Headless CLI mode

Usage: prompt-foundry <command> [options]

Commands:
  templates             List prompt templates
  show <id>             Show a template and its questions
  generate, gen <id>    Generate a prompt document
  list, ls              List saved prompts
  view, get <id>        Show a saved prompt
  delete, rm <id>       Delete a saved prompt
  copy <id>             Copy a saved prompt to the clipboard
  search <query>        Fuzzy search saved prompts
  sync [flush]          Show or drain the offline sync queue
  help                  Show this help

Generate options:
  --answers, -a <file>  Read answers from a YAML file
  --set, -s key=value   Set one answer (repeatable)
  --text, -t <text>     Initial text placed before the document
  --format, -f json     Output as a JSON message array
  --copy, -c            Copy the result to the clipboard
  --save [name]         Save the result to the prompt library`)
	return nil
}
