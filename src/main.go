// The Main function of Aoede. It wires the configuration, the library
// scanner, the playlists database and the webserver together.
//
// At the moment it is in package src because I import it from the project's
// root folder.
package src

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/ironsmile/aoede/src/catalog"
	"github.com/ironsmile/aoede/src/config"
	"github.com/ironsmile/aoede/src/helpers"
	"github.com/ironsmile/aoede/src/playlists"
	"github.com/ironsmile/aoede/src/scan"
	"github.com/ironsmile/aoede/src/tags"
	"github.com/ironsmile/aoede/src/version"
	"github.com/ironsmile/aoede/src/webserver"
)

var (
	showVersion bool
	configFile  string
	scanOnly    bool
	pidFile     string
)

func init() {
	flag.BoolVar(&showVersion, "v", false, "Print the program version and exit.")
	flag.StringVar(&configFile, "config", "",
		"Use this configuration file instead of the one in the user path.")
	flag.BoolVar(&scanOnly, "scan-only", false,
		"Scan the libraries, print what was found and exit without starting "+
			"the server.")
	flag.StringVar(&pidFile, "p", "",
		"Write the process ID in this file. Relative paths are inside the "+
			"user path. No pidfile is written when empty.")
}

// Main is the only thing run in the project's root main.go file. For all
// intent and purposes this is the main function. sqlFilesFS is the directory
// with the SQL migrations for the playlists database, embedded by the root
// main.
func Main(sqlFilesFS fs.FS) {
	flag.Parse()

	if showVersion {
		version.Print(os.Stdout)
		return
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := run(ctx, afero.NewOsFs(), sqlFilesFS); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// run does the actual work of Main. Split out so that the deferred cleanups
// actually run, os.Exit would skip them.
func run(ctx context.Context, appfs afero.Fs, sqlFilesFS fs.FS) error {
	cfg, err := config.FindAndParse(appfs, configFile)
	if err != nil {
		return fmt.Errorf("parsing the configuration failed: %w", err)
	}

	userPath := cfg.UserPath
	if userPath == "" {
		userPath, err = helpers.ProjectUserPath(appfs)
		if err != nil {
			return err
		}
	}

	// In scan-only mode the log stays on stderr so that the scan progress is
	// actually visible in the terminal.
	if !scanOnly {
		logFile := helpers.AbsolutePath(cfg.LogFile, userPath)
		if err := helpers.SetLogsFile(appfs, logFile); err != nil {
			return err
		}
	}

	if pidFile != "" {
		pidPath := helpers.AbsolutePath(pidFile, userPath)
		if err := helpers.SetUpPidFile(appfs, pidPath); err != nil {
			return err
		}
		defer helpers.RemovePidFile(appfs, pidPath)
	}

	if len(cfg.Libraries) == 0 {
		log.Println("No media libraries are configured. Nothing will be scanned.")
	}

	catalogs := new(catalog.Holder)
	scanner := scan.New(
		appfs,
		scan.ParserFunc(tags.ParseFile),
		cfg.Libraries,
		cfg.LibraryScan,
	)

	found, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("initial library scan failed: %w", err)
	}
	catalogs.Set(found)

	if scanOnly {
		printCatalogStats(os.Stdout, found)
		return nil
	}

	manager, err := playlists.NewManager(
		helpers.AbsolutePath(cfg.PlaylistsDatabase, userPath),
		sqlFilesFS,
		catalogs,
	)
	if err != nil {
		return fmt.Errorf("opening the playlists database failed: %w", err)
	}
	defer manager.Close()

	if cfg.WatchLibraries && len(cfg.Libraries) > 0 {
		watcher, err := scan.NewWatcher(appfs, cfg.Libraries, scan.DefaultQuietPeriod)
		if err != nil {
			log.Printf("Error starting the library watcher: %s", err)
		} else {
			defer watcher.Close()
			go watchLoop(ctx, watcher, scanner, catalogs)
		}
	}

	srv := webserver.NewServer(cfg, catalogs, manager)
	srv.Serve()

	go func() {
		<-ctx.Done()
		srv.Stop()
	}()

	srv.Wait()
	return nil
}

// watchLoop rescans the libraries every time the watcher reports a change in
// them and publishes the newly built catalogs. Returns once ctx is done.
func watchLoop(
	ctx context.Context,
	watcher *scan.Watcher,
	scanner *scan.Scanner,
	catalogs *catalog.Holder,
) {
	for {
		select {
		case <-watcher.Rescan():
			log.Println("Libraries changed. Rescanning.")

			found, err := scanner.Scan(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Error rescanning the libraries: %s", err)
				continue
			}

			catalogs.Set(found)
		case <-ctx.Done():
			return
		}
	}
}

// printCatalogStats writes a short summary of what a scan found. It is the
// output of the -scan-only flag.
func printCatalogStats(out io.Writer, c *catalog.Catalog) {
	fmt.Fprintf(out, "Catalog %s built at %s\n",
		c.ID(), c.CreatedAt().Format(time.RFC3339))
	fmt.Fprintf(out, "%d songs in %d albums from %d artists across %d genres\n",
		len(c.Songs()), len(c.Albums()), len(c.Artists()), len(c.Genres()))
}
