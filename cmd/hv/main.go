package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"

	"github.com/a-Gb/hankerlytics/pkg/cache"
	"github.com/a-Gb/hankerlytics/pkg/config"
	"github.com/a-Gb/hankerlytics/pkg/hn"
	"github.com/a-Gb/hankerlytics/pkg/insight"
	"github.com/a-Gb/hankerlytics/pkg/layout"
	"github.com/a-Gb/hankerlytics/pkg/model"
	"github.com/a-Gb/hankerlytics/pkg/render"
	"github.com/a-Gb/hankerlytics/pkg/thread"
	"github.com/a-Gb/hankerlytics/pkg/ui"
	"github.com/a-Gb/hankerlytics/pkg/view"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	version := flag.Bool("version", false, "Show version")
	id := flag.Int64("id", 0, "Thread id to load")
	feed := flag.String("feed", "", "Frontpage listing to load (top, new, best, ask, show, job)")
	limit := flag.Int("limit", 24, "Story count for -feed")
	layoutName := flag.String("layout", "icicle", "Layout for -export (icicle, sankey, lanes, tidy, mosaic)")
	export := flag.String("export", "", "Render to a file instead of the TUI (svg or png)")
	out := flag.String("out", "", "Output path for -export (default thread-<id>.<ext>)")
	width := flag.Float64("width", 1280, "Export canvas width")
	height := flag.Float64("height", 800, "Export canvas height")
	serve := flag.Bool("serve", false, "Serve the exported SVG over a local preview server")
	offline := flag.Bool("offline", false, "Use cached data only, no network")
	stats := flag.Bool("stats", false, "Print thread shape statistics as JSON and exit")
	payload := flag.String("payload", "", "Print a classification payload (thread scope) and exit")
	flag.Parse()

	if *help {
		fmt.Println("Usage: hv [options]")
		fmt.Println("\nA layout engine and viewer for threaded discussions.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *version {
		fmt.Println("hv version 0.1.0")
		os.Exit(0)
	}

	cfg, err := config.Discover()
	if err != nil {
		log.Printf("warning: config load failed, using defaults: %v", err)
		cfg = config.Default()
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	ctx := context.Background()
	client := newClient(cfg)

	switch {
	case *feed != "":
		if err := runFeed(ctx, cfg, client, store, *feed, *limit, *export, *out, *width, *height); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case *id != 0:
		sess, err := loadThread(ctx, cfg, client, store, *id, *offline)
		if err != nil {
			fmt.Printf("Error loading thread %d: %v\n", *id, err)
			os.Exit(1)
		}

		switch {
		case *stats:
			printJSON(insight.ComputeStats(sess.Root))
		case *payload != "":
			emitPayload(sess, insight.Scope(*payload))
		case *export != "":
			path := *out
			if path == "" {
				path = fmt.Sprintf("thread-%d.%s", *id, *export)
			}
			if err := runExport(sess, cfg, layout.Kind(*layoutName), *export, path, *width, *height, *serve); err != nil {
				fmt.Printf("Error exporting: %v\n", err)
				os.Exit(1)
			}
		default:
			p := tea.NewProgram(ui.NewModel(sess), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				fmt.Printf("Error running viewer: %v\n", err)
				os.Exit(1)
			}
		}

	default:
		fmt.Println("Nothing to do: pass -id <thread> or -feed <listing>.")
		flag.PrintDefaults()
		os.Exit(1)
	}
}

// openStore opens the cache, degrading to no cache on failure.
func openStore(cfg config.Config) *cache.Store {
	store, err := cache.Open(cfg.Cache.Path, cfg.Cache.ThreadCapacity, cfg.Cache.ListingCapacity)
	if err != nil {
		log.Printf("warning: cache unavailable: %v", err)
		return nil
	}
	return store
}

func newClient(cfg config.Config) *hn.Client {
	var opts []hn.Option
	if cfg.Fetch.BaseURL != "" {
		opts = append(opts, hn.WithBaseURL(cfg.Fetch.BaseURL))
	}
	return hn.NewClient(opts...)
}

// loadThread fetches one thread (or reads it from cache in offline mode)
// and builds a session over it. After a fresh fetch the cached copy is
// diffed against the new one and the change summary printed.
func loadThread(ctx context.Context, cfg config.Config, client *hn.Client, store *cache.Store, id int64, offline bool) (*thread.Session, error) {
	key := fmt.Sprintf("%d", id)

	var items map[int64]*model.Item
	if offline {
		if store == nil {
			return nil, fmt.Errorf("offline mode requires a working cache")
		}
		entry := store.GetThread(key)
		if entry == nil {
			return nil, fmt.Errorf("thread not in cache")
		}
		items = itemMap(entry.Items)
		fmt.Fprintf(os.Stderr, "loaded %d items from cache (fetched %s)\n",
			len(items), entry.FetchedAt.Format("2006-01-02 15:04"))
	} else {
		fetcher := hn.NewTreeFetcher(client, cfg.Fetch.Concurrency, cfg.Fetch.ProgressEvery)
		fetched, err := fetcher.FetchTree(ctx, id, hn.FetchOptions{
			MaxNodes: cfg.Fetch.MaxNodes,
			MaxDepth: cfg.Fetch.MaxDepth,
			OnProgress: func(p hn.Progress) {
				fmt.Fprintf(os.Stderr, "\rfetched %d items (%d pending)", p.Fetched, p.Pending)
				if p.Done {
					fmt.Fprintln(os.Stderr)
				}
			},
		})
		if err != nil {
			return nil, err
		}
		items = fetched

		if store != nil {
			flat := flatten(items)
			if entry := store.GetThread(key); entry != nil {
				d := cache.DiffItems(entry.Items, flat)
				if !d.Empty() {
					fmt.Fprintf(os.Stderr, "since last fetch: %d new, %d updated\n",
						len(d.Added), len(d.Updated))
				}
			}
			if err := store.PutThread(key, flat); err != nil {
				log.Printf("warning: cache write failed: %v", err)
			}
		}
	}

	sess := thread.NewSession(cfg.Palette)
	if err := sess.Reset(id, items); err != nil {
		return nil, err
	}
	return sess, nil
}

// runFeed loads a frontpage listing with preview subtrees and renders the
// mosaic grid, or prints the listing when no export was requested.
func runFeed(ctx context.Context, cfg config.Config, client *hn.Client, store *cache.Store, kind string, limit int, export, out string, width, height float64) error {
	fk := model.FeedKind(kind)
	if !fk.IsValid() {
		return fmt.Errorf("unknown feed: %s", kind)
	}

	ids, err := client.FeedIDs(ctx, fk)
	if err != nil {
		return fmt.Errorf("listing fetch: %w", err)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	stories, err := client.FetchFeedItems(ctx, ids, cfg.Fetch.Concurrency)
	if err != nil {
		return err
	}
	if len(stories) == 0 {
		return fmt.Errorf("no stories in listing")
	}

	if store != nil {
		flat := make([]model.Item, 0, len(stories))
		for _, s := range stories {
			flat = append(flat, *s)
		}
		if err := store.PutListing(string(fk), flat); err != nil {
			log.Printf("warning: cache write failed: %v", err)
		}
	}

	if export == "" {
		for i, s := range stories {
			fmt.Printf("%2d. %s  (%d points, %d comments)\n", i+1, s.Title, s.Score, s.Descendants)
		}
		return nil
	}

	// Preview subtrees feed the embedded thumbnails inside each card. The
	// ready callback runs concurrently per story; collect under the map's
	// owner by draining after Load returns.
	fetcher := hn.NewTreeFetcher(client, cfg.Fetch.Concurrency, 0)
	loader := hn.NewPreviewLoader(fetcher, 6, 4, 2)
	previews := make(map[int64]map[int64]*model.Item)
	ready := make(chan struct {
		id    int64
		items map[int64]*model.Item
	}, len(stories))
	storyIDs := make([]int64, 0, len(stories))
	for _, s := range stories {
		storyIDs = append(storyIDs, s.ID)
	}
	err = loader.Load(ctx, storyIDs, func(storyID int64, items map[int64]*model.Item) {
		ready <- struct {
			id    int64
			items map[int64]*model.Item
		}{storyID, items}
	})
	close(ready)
	if err != nil {
		return err
	}
	for r := range ready {
		previews[r.id] = r.items
	}

	root, index := thread.BuildFeed(kind+" stories", stories, previews)
	colors := thread.AssignLaneColors(root, cfg.Palette)

	if out == "" {
		out = fmt.Sprintf("feed-%s.%s", kind, export)
	}
	rc := render.Context{
		Index:  index,
		Colors: colors,
		Detail: view.DetailFull,
	}
	return drawExport(root, rc, layout.KindMosaic, export, out, width, height, layoutParams(cfg), false)
}

// runExport computes one layout over the session's visible tree and
// writes it to an SVG or PNG file.
func runExport(sess *thread.Session, cfg config.Config, kind layout.Kind, format, path string, width, height float64, serve bool) error {
	if !kind.IsValid() {
		return fmt.Errorf("unknown layout: %s", kind)
	}
	rc := render.Context{
		Selection: sess.Focus.Selected,
		Collapsed: sess.Collapsed,
		Focus:     sess.Focus,
		Index:     sess.Index,
		Colors:    sess.Colors,
		Sentiment: sess.Sentiment,
		Detail:    view.DetailFull,
	}
	return drawExport(sess.VisibleTree(), rc, kind, format, path, width, height, layoutParams(cfg), serve)
}

func drawExport(visible *thread.Node, rc render.Context, kind layout.Kind, format, path string, width, height float64, params layout.Params, serve bool) error {
	algo, ok := layout.ForKind(kind)
	if !ok {
		return fmt.Errorf("unknown layout: %s", kind)
	}
	res := algo.Compute(visible, layout.Context{
		Width:  width,
		Height: height,
		Scale:  1,
		Params: params,
	})

	switch format {
	case "svg":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.NewSVGRenderer(f).Draw(res, rc); err != nil {
			return err
		}
	case "png":
		if err := render.NewPNGRenderer(path).Draw(res, rc); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format: %s (want svg or png)", format)
	}
	fmt.Printf("wrote %s (%d nodes, depth %d)\n", path, len(res.Nodes), res.MaxDepth)

	if serve && format == "svg" {
		srv, err := render.NewPreviewServer(filepath.Dir(path))
		if err != nil {
			return err
		}
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("warning: preview server: %v", err)
			}
		}()
		fmt.Printf("serving at %s/%s, press enter to stop\n", srv.URL(), filepath.Base(path))
		fmt.Scanln()
		return srv.Stop()
	}
	return nil
}

// layoutParams applies config overrides onto the built-in spacing.
func layoutParams(cfg config.Config) layout.Params {
	p := layout.DefaultParams()
	if cfg.Layout.BandHeight > 0 {
		p.BandHeight = cfg.Layout.BandHeight
	}
	if cfg.Layout.ColumnSpacing > 0 {
		p.ColumnSpacing = cfg.Layout.ColumnSpacing
	}
	if cfg.Layout.RowSpacing > 0 {
		p.RowSpacing = cfg.Layout.RowSpacing
	}
	if cfg.Layout.MosaicColumns > 0 {
		p.Columns = cfg.Layout.MosaicColumns
	}
	return p
}

func emitPayload(sess *thread.Session, scope insight.Scope) {
	if scope == "" {
		scope = insight.ScopeThread
	}
	p, err := insight.BuildPayload(sess, scope)
	if err != nil {
		fmt.Printf("Error building payload: %v\n", err)
		os.Exit(1)
	}
	data, err := p.Encode()
	if err != nil {
		fmt.Printf("Error encoding payload: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
	fmt.Println()
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func itemMap(items []model.Item) map[int64]*model.Item {
	m := make(map[int64]*model.Item, len(items))
	for i := range items {
		m[items[i].ID] = &items[i]
	}
	return m
}

func flatten(items map[int64]*model.Item) []model.Item {
	flat := make([]model.Item, 0, len(items))
	for _, it := range items {
		flat = append(flat, *it)
	}
	return flat
}
