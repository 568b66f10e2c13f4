package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joestump/joe-writer/internal/intake"
	"github.com/joestump/joe-writer/internal/render"
	"github.com/joestump/joe-writer/internal/writer"
)

func newGenerateCmd() *cobra.Command {
	var (
		persona    string
		input      string
		brandVoice string
		asHTML     bool
		showBrief  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one generation from the terminal",
		Long:  "Reads competitor content from --input (or stdin), runs the same prompt chain as the web form and prints the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()
			if a.genErr != nil {
				return a.genErr
			}

			competitor, err := readInput(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			req := writer.GenerationRequest{
				Persona:    persona,
				Competitor: strings.TrimSpace(competitor),
				BrandVoice: intake.DefaultBrandVoice,
			}
			if brandVoice != "" {
				b, err := os.ReadFile(brandVoice)
				if err != nil {
					return fmt.Errorf("read brand voice: %w", err)
				}
				if len(b) > 0 {
					if req.BrandVoice, err = intake.DecodeText(b); err != nil {
						return fmt.Errorf("%s: %w", brandVoice, err)
					}
				}
			}

			res, err := a.writer.Write(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showBrief && res.Brief != "" {
				fmt.Fprintf(out, "<!-- strategic brief -->\n%s\n<!-- end brief -->\n\n", res.Brief)
			}
			if !asHTML {
				_, err = fmt.Fprintln(out, res.Content)
				return err
			}
			html, err := render.Markdown(res.Content)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(html))
			return err
		},
	}

	cmd.Flags().StringVar(&persona, "persona", intake.DefaultPersona, "content persona (article, copywriter)")
	cmd.Flags().StringVarP(&input, "input", "i", "-", "competitor content file, or - for stdin")
	cmd.Flags().StringVar(&brandVoice, "brand-voice", "", "optional brand voice text file")
	cmd.Flags().BoolVar(&asHTML, "html", false, "print rendered HTML instead of markdown")
	cmd.Flags().BoolVar(&showBrief, "show-brief", false, "also print the intermediate strategic brief")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "" {
		return "", errors.New("--input is required")
	}
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}
