package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tubegrab/tubegrab/internal/config"
	"github.com/tubegrab/tubegrab/internal/mirror"
	"github.com/tubegrab/tubegrab/internal/provider"
	"github.com/tubegrab/tubegrab/internal/resolver"
)

var showLinks bool

var infoCmd = &cobra.Command{
	Use:   "info <url>",
	Short: "Resolve a video URL and list available formats",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	infoCmd.Flags().BoolVar(&showLinks, "links", false, "print mirror download links for each format")
	rootCmd.AddCommand(infoCmd)
}

func newResolver(cfg *config.Config) *resolver.Resolver {
	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	return resolver.New(
		provider.NewPrimaryClient(cfg.Provider.APIKey, cfg.Provider.APIHost, timeout),
		provider.NewOEmbedClient(timeout),
	)
}

func runInfo(url string) error {
	cfg := config.LoadOrDefault()

	if !config.Exists() {
		color.Yellow("No config file found. Run 'tubegrab init' and set your provider API key.")
	}

	meta, err := newResolver(cfg).Resolve(context.Background(), url)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Println(meta.Title)
	fmt.Printf("by %s\n", meta.Author)
	if meta.LengthSeconds > 0 {
		fmt.Printf("%d:%02d · %d views\n", meta.LengthSeconds/60, meta.LengthSeconds%60, meta.ViewCount)
	}
	if meta.Source == resolver.SourceLimited {
		color.Yellow("Limited info: the primary provider is unavailable, formats below are placeholders.")
	}
	fmt.Println()

	m := mirror.New(cfg.Mirror.BaseURL)
	for _, f := range meta.Formats {
		kind := "video"
		fileFormat := "mp4"
		if !f.HasVideo {
			kind = "audio"
			fileFormat = "mp3"
		}
		fmt.Printf("  %-12s %-24s %s\n", f.QualityLabel, f.MimeType, faint.Sprintf("itag=%s %s", f.Itag, kind))
		if showLinks {
			faint.Printf("    %s\n", m.DownloadTarget(meta.VideoID, f.Itag, fileFormat))
		}
	}
	return nil
}
