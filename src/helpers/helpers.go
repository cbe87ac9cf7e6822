// Package helpers contains a few helper functions which are used throughout
// the project.
package helpers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/spf13/afero"
)

// SetLogsFile redirects the output of the standard library logger to the file
// at logFilePath, creating it and any missing parent directories beforehand.
func SetLogsFile(appfs afero.Fs, logFilePath string) error {
	dir := filepath.Dir(logFilePath)
	if err := appfs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating log file directory `%s` failed: %w", dir, err)
	}

	logFile, err := appfs.Create(logFilePath)
	if err != nil {
		return fmt.Errorf("could not create logfile `%s`: %w", logFilePath, err)
	}

	log.SetOutput(logFile)
	return nil
}

// AbsolutePath returns path unchanged when it is absolute and joins it to
// workDir otherwise.
func AbsolutePath(path, workDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// SetUpPidFile writes the process ID of the current process in the file
// at pidFilePath.
func SetUpPidFile(appfs afero.Fs, pidFilePath string) error {
	pidFile, err := appfs.Create(pidFilePath)
	if err != nil {
		return fmt.Errorf("could not create pidfile `%s`: %w", pidFilePath, err)
	}

	if _, err := fmt.Fprintf(pidFile, "%d", os.Getpid()); err != nil {
		_ = pidFile.Close()
		_ = appfs.Remove(pidFilePath)
		return fmt.Errorf("writing pidfile `%s` failed: %w", pidFilePath, err)
	}

	return pidFile.Close()
}

// RemovePidFile deletes the file at pidFilePath. Any errors are logged and
// otherwise ignored.
func RemovePidFile(appfs afero.Fs, pidFilePath string) {
	if err := appfs.Remove(pidFilePath); err != nil {
		log.Printf("error removing pidfile `%s`: %s", pidFilePath, err)
	}
}

// ProjectUserPath returns the directory in which the application stores its
// user specific files such as the configuration, the playlists database and
// log files. The directory is created when missing.
func ProjectUserPath(appfs afero.Fs) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding user home directory failed: %w", err)
	}

	dir := filepath.Join(home, UserDir)
	if err := appfs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating user directory `%s` failed: %w", dir, err)
	}

	return dir, nil
}

// trackNumberRegexps are the patterns which GuessTrackNumber tries in order.
// Every one of them captures the track number in its first group. They are
// deliberately conservative, a guess is only made on high confidence names.
var trackNumberRegexps = []*regexp.Regexp{
	// Values such as "#1_05_Title" where the track follows a disc number.
	regexp.MustCompile(`^#?\d{1,2}_(\d{1,2})_`),

	// A leading track number followed by a separator and the actual title.
	regexp.MustCompile(`^(\d{1,2})[\s._)\-]+\S`),

	// A track number in brackets anywhere in the name, e.g. "(04)" or "[14]".
	regexp.MustCompile(`[(\[](\d{1,2})[)\]]`),

	// "Artist - NN - Title" with the number framed by spaced dashes.
	regexp.MustCompile(`\s-\s(\d{1,2})\s-\s`),

	// "Artist-NN-Title" with the number framed by bare dashes.
	regexp.MustCompile(`-(\d{1,2})-`),

	// "Artist - NN__Title" where a double underscore ends the number.
	regexp.MustCompile(`[-\s](\d{1,2})__`),
}

// GuessTrackNumber tries to find the track number of a media file from its
// file name. Returns 0 when no confident guess could be made.
func GuessTrackNumber(filePath string) int64 {
	if filePath == "" {
		return 0
	}

	base := filepath.Base(filePath)
	base = base[:len(base)-len(filepath.Ext(base))]

	for _, re := range trackNumberRegexps {
		match := re.FindStringSubmatch(base)
		if match == nil {
			continue
		}

		number, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			log.Printf("error converting guessed track number `%s`: %s", match[1], err)
			return 0
		}

		return number
	}

	return 0
}
