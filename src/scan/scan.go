// Package scan walks the configured media libraries, parses the metadata of
// every media file it finds and builds catalogs out of them. Scanning may be
// throttled from the configuration so that a big initial scan does not trash
// the disks of the host machine.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ironsmile/aoede/src/catalog"
	"github.com/ironsmile/aoede/src/config"
	"github.com/ironsmile/aoede/src/graph"
	"github.com/ironsmile/aoede/src/tags"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Parser

// Parser reads the metadata of a single media file.
type Parser interface {
	ParseFile(path string) (tags.Song, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(path string) (tags.Song, error)

// ParseFile implements Parser by calling the wrapped function.
func (f ParserFunc) ParseFile(path string) (tags.Song, error) {
	return f(path)
}

// Scanner finds the media files in a set of library roots and projects them
// into a catalog. It is safe to run consecutive scans with the same Scanner,
// every scan builds a brand new catalog.
type Scanner struct {
	fs      afero.Fs
	parser  Parser
	roots   []string
	scanCfg config.ScanSection
}

// New creates a Scanner which looks for media files under every directory in
// roots inside appfs and parses them with parser.
func New(appfs afero.Fs, parser Parser, roots []string, scanCfg config.ScanSection) *Scanner {
	return &Scanner{
		fs:      appfs,
		parser:  parser,
		roots:   roots,
		scanCfg: scanCfg,
	}
}

// Scan walks all library roots and returns the catalog built from the media
// files found in them. Files which cannot be read or parsed are logged and
// skipped. When ctx is cancelled the scan is abandoned, no partially built
// catalog is ever returned.
func (scn *Scanner) Scan(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()

	if scn.scanCfg.InitialWait > 0 {
		log.Printf("Pausing initial library scan for %s as configured",
			scn.scanCfg.InitialWait)
		if err := sleepCtx(ctx, scn.scanCfg.InitialWait); err != nil {
			return nil, err
		}
	}

	paths := make(chan string, 100)
	songs := make(chan tags.Song, 100)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		walkers, walkersCtx := errgroup.WithContext(groupCtx)
		for _, root := range scn.roots {
			walkers.Go(func() error {
				return scn.walkRoot(walkersCtx, root, paths)
			})
		}
		err := walkers.Wait()
		close(paths)
		return err
	})

	group.Go(func() error {
		parsers, parsersCtx := errgroup.WithContext(groupCtx)
		for i := 0; i < runtime.NumCPU(); i++ {
			parsers.Go(func() error {
				return scn.parseFiles(parsersCtx, paths, songs)
			})
		}
		err := parsers.Wait()
		close(songs)
		return err
	})

	// A single goroutine feeds the builder, it is not safe for concurrent
	// use. It always drains the songs channel so that no parser is left
	// blocked on an abandoned scan.
	builder := graph.NewBuilder()
	var scannedFiles int
	group.Go(func() error {
		for song := range songs {
			builder.Add(song)
			scannedFiles++
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("scanning media libraries: %w", err)
	}

	found := catalog.New(builder.Build())
	log.Printf("Scanning %d files took %s", scannedFiles, time.Since(start))
	return found, nil
}

// walkRoot walks a single library root and sends every supported media file
// it sees into paths. Walk errors for particular files or directories are
// logged and the walk moves on.
func (scn *Scanner) walkRoot(ctx context.Context, root string, paths chan<- string) error {
	start := time.Now()
	defer func() {
		log.Printf("Walking %s took %s", root, time.Since(start))
	}()

	filesPerOperation := scn.scanCfg.FilesPerOperation
	sleepPerOperation := scn.scanCfg.SleepPerOperation

	var scannedFiles int64
	walkFunc := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Println(err)
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if isSupportedFormat(path) {
			select {
			case paths <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		scannedFiles++
		if filesPerOperation > 0 && scannedFiles >= filesPerOperation &&
			sleepPerOperation > 0 {

			log.Printf("Scan limit of %d files reached for [%s], sleeping for %s",
				filesPerOperation, root, sleepPerOperation)

			if err := sleepCtx(ctx, sleepPerOperation); err != nil {
				return err
			}
			scannedFiles = 0
		}

		return nil
	}

	if err := afero.Walk(scn.fs, root, walkFunc); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		log.Printf("Error walking %s: %s", root, err)
	}

	return nil
}

// parseFiles reads paths until the channel is closed and sends the parsed
// metadata into songs. Files which fail to parse are logged and skipped.
func (scn *Scanner) parseFiles(
	ctx context.Context,
	paths <-chan string,
	songs chan<- tags.Song,
) error {
	for path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		song, err := scn.parser.ParseFile(path)
		if err != nil {
			log.Printf("Error parsing %s: %s", path, err)
			continue
		}

		select {
		case songs <- song:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// sleepCtx blocks for the duration or until the context is done, whichever
// comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// supportedFormats are the file extensions which are considered media files
// during a library walk. Everything else is skipped.
var supportedFormats = []string{
	".mp3",
	".ogg",
	".oga",
	".wav",
	".fla",
	".flac",
	".m4a",
	".opus",
	".webm",
}

func isSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
