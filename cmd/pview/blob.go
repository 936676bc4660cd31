package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/muesli/termenv"
	"github.com/pview-dev/pview/pkg/api"
	"github.com/pview-dev/pview/pkg/project"
	"github.com/spf13/cobra"
)

var (
	blobCommit     string
	blobHighlight  bool
	blobColor      bool
	blobLinenumber bool
	blobRaw        bool
)

var blobCmd = &cobra.Command{
	Use:     "blob PROJECT PATH",
	Aliases: []string{"cat"},
	Short:   "Print out the contents of file at path",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := api.FromContext(ctx)
		id, fp := args[0], args[1]

		commit, err := resolveCommit(ctx, c, id, blobCommit)
		if err != nil {
			return err
		}

		blob, err := project.GetBlob(ctx, c, id, commit, fp, project.BlobOptions{
			Highlight: blobHighlight,
		})
		if err != nil {
			return err
		}

		if ojson {
			return writeJSON(cmd.OutOrStdout(), blob)
		}

		content := blob.Content
		switch {
		case blob.Binary:
			if !blobRaw {
				return fmt.Errorf("binary file: use --raw to print")
			}
		case blob.HTML:
			// Already rendered by the server.
		default:
			if blobColor {
				content, err = withFormatting(fp, content)
				if err != nil {
					return err
				}
			}

			if blobLinenumber {
				content = withLineNumber(content, blobColor)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	},
}

func init() {
	blobCmd.Flags().StringVar(&blobCommit, "commit", "", "commit to read, defaults to the project head")
	blobCmd.Flags().BoolVar(&blobHighlight, "highlight", false, "Ask the server for highlighted HTML")
	blobCmd.Flags().BoolVarP(&blobRaw, "raw", "r", false, "Print raw contents")
	blobCmd.Flags().BoolVarP(&blobLinenumber, "linenumber", "l", false, "Print line numbers")
	blobCmd.Flags().BoolVar(&blobColor, "color", false, "Colorize output")
}

func withLineNumber(s string, color bool) string {
	lines := strings.Split(s, "\n")
	// NB: len() is not a particularly safe way to count string width (because
	// it's counting bytes instead of runes) but in this case it's okay
	// because we're only dealing with digits, which are one byte each.
	mll := len(fmt.Sprintf("%d", len(lines)))
	for i, l := range lines {
		digit := fmt.Sprintf("%*d", mll, i+1)
		bar := "│"
		if color {
			digit = lineDigitStyle.Render(digit)
			bar = lineBarStyle.Render(bar)
		}
		if i < len(lines)-1 || len(l) != 0 {
			// If the final line was a newline we'll get an empty string for
			// the final line, so drop the newline altogether.
			lines[i] = fmt.Sprintf(" %s %s %s", digit, bar, l)
		}
	}
	return strings.Join(lines, "\n")
}

func withFormatting(p, c string) (string, error) {
	zero := uint(0)
	lang := ""
	lexer := lexers.Match(p)
	if lexer != nil && lexer.Config() != nil {
		lang = lexer.Config().Name
	}
	formatter := &gansi.CodeBlockElement{
		Code:     c,
		Language: lang,
	}
	r := strings.Builder{}
	styles := styleConfig()
	styles.CodeBlock.Margin = &zero
	rctx := gansi.NewRenderContext(gansi.Options{
		Styles:       styles,
		ColorProfile: termenv.TrueColor,
	})
	if err := formatter.Render(&r, rctx); err != nil {
		return "", err
	}
	return r.String(), nil
}
