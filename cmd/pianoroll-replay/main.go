package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/midi-editor/pianoroll"
	"github.com/midi-editor/pianoroll/config"
	"github.com/midi-editor/pianoroll/editor"
	"github.com/midi-editor/pianoroll/replay"
	"github.com/midi-editor/pianoroll/version"
)

const defaultTemplate = `{{- range .Notes }}
{{ .PitchName | printf "%-4s" }} tick={{ .Tick }} duration={{ .Duration }} velocity={{ .Velocity }} lyric={{ .Lyric | quote }}{{ if .Selected }} selected{{ end }}
{{- end }}
{{ len .Notes }} notes, history {{ .History.Head }}/{{ sub (len .History.Entries) 1 }}, position {{ .SelectionTicks }}, tempo {{ .Tempo }}
`

// result is what the output template sees.
type result struct {
	Notes          pianoroll.Notes
	History        editor.HistoryLog
	SelectionTicks int
	Tempo          int
	ScaleX         float64
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := editor.NewDefaultConfig()
	if err := config.LoadWithDefaults(cmd.String("config"), "", &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one script file, got %d arguments", cmd.Args().Len())
	}
	script, err := replay.LoadFile(cmd.Args().First())
	if err != nil {
		return err
	}
	broker := editor.NewBroker()
	model := script.NewModel(editor.WithConfig(cfg), editor.WithLogger(logger), editor.WithBroker(broker))
	if err := replay.Run(editor.NewInteraction(model), script.Events); err != nil {
		return err
	}
	counts := drainMessages(logger, broker)
	logger.Debug("script replayed", "events", len(script.Events), "notes", len(model.Notes()), "messages", counts)
	res := result{
		Notes:          model.Notes(),
		History:        model.History().Log(),
		SelectionTicks: model.SelectionTicks(),
		Tempo:          model.Tempo().Value(),
		ScaleX:         model.ScaleX(),
	}
	if cmd.Bool("yaml") {
		return yaml.NewEncoder(os.Stdout).Encode(res.Notes)
	}
	return render(os.Stdout, cmd.String("template"), res)
}

// drainTimeout is how long drainMessages waits for a message that is not yet
// in the channel.
const drainTimeout = 10 * time.Millisecond

// drainMessages empties the broker after a replay, logging every message the
// editor sent to the presentation layer. It returns the count per kind.
func drainMessages(logger *slog.Logger, broker *editor.Broker) map[string]int {
	counts := map[string]int{}
	for {
		msg, ok := editor.TimeoutReceive(broker.ToGUI, drainTimeout)
		if !ok {
			return counts
		}
		counts[msg.Kind.String()]++
		logger.Debug("message to gui", "kind", msg.Kind, "param", msg.Param, "id", msg.ID)
	}
}

func render(w io.Writer, templateFile string, res result) error {
	text := defaultTemplate
	if templateFile != "" {
		data, err := os.ReadFile(templateFile)
		if err != nil {
			return fmt.Errorf("could not read template: %w", err)
		}
		text = string(data)
	}
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("could not parse template: %w", err)
	}
	return tmpl.Execute(w, res)
}

func main() {
	cmd := &cli.Command{
		Name:      "pianoroll-replay",
		Usage:     "Replay a script of pointer and keyboard events on the piano roll editor and print the notes",
		ArgsUsage: "SCRIPT.yml",
		Version:   version.String(),
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "pianoroll.yml",
				Value:       "pianoroll.yml",
				Sources:     cli.EnvVars("PIANOROLL_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Go text/template (with sprig functions) used to print the result",
			},
			&cli.BoolFlag{
				Name:  "yaml",
				Usage: "Print the resulting notes as YAML instead",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
