package main

import (
	"context"
	"errors"
	"fmt"
	"go_fast_split/configs"
	"go_fast_split/constants"
	"go_fast_split/engine"
	"go_fast_split/fileio"
	"go_fast_split/progress"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akamensky/argparse"
)

func main() {
	cfg, err := configs.Load(constants.ENV_FILE)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	args := argparse.NewParser("split", constants.Title)

	buffer := args.String("b", "buffer", &argparse.Options{Required: false, Help: "Read buffer size, never larger than a part",
		Default: strconv.Itoa(cfg.BufferSize)})
	checksum := args.Selector("c", "checksum", []string{"none", "crc32", "sha256"}, &argparse.Options{Required: false,
		Help: "Checksum computed for every part", Default: cfg.Checksum.String()})
	dest := args.String("d", "dest", &argparse.Options{Required: false, Help: "Destination folder. Defaults to the source's folder"})
	file := args.String("f", "file", &argparse.Options{Required: true, Help: "File to split"})
	genlog := args.String("g", "log", &argparse.Options{Required: false, Help: "Append generated part names to this file",
		Default: cfg.GenerationLog})
	lines := args.Flag("l", "lines", &argparse.Options{Help: "Split by line count instead of bytes. Lines end at LF, so CRLF is kept and a lone CR does not end a line"})
	manifest := args.Flag("m", "manifest", &argparse.Options{Help: "Write part checksums next to the parts"})
	pattern := args.String("n", "name", &argparse.Options{Required: false,
		Help: "Part name pattern. %[1]d is the part number and %[2]d the part count, e.g. backup.%03[1]d"})
	size := args.String("s", "size", &argparse.Options{Required: true,
		Help: "Part size in bytes (minimum " + progress.FormatSize(constants.MIN_PART_SIZE) + ", K/M/G suffixes allowed) or in lines with -l"})
	remove := args.Flag("x", "delete", &argparse.Options{Help: "Delete source after a successful split"})

	err = args.Parse(os.Args)

	if err != nil {
		fmt.Print(args.Usage(err))
		os.Exit(1)
	}

	fileName := filepath.Clean(*file)

	job := engine.Job{
		Source:         fileName,
		DestDir:        *dest,
		Pattern:        *pattern,
		DeleteOriginal: *remove,
		LogPath:        *genlog,
		Manifest:       *manifest,
	}

	if *lines {
		job.Mode = engine.ByLines
		job.PartSize, err = strconv.ParseInt(*size, 10, 64)
	} else {
		job.Mode = engine.ByBytes
		job.PartSize, err = progress.ParseSize(*size)
	}
	if err != nil {
		fmt.Println("Invalid part size", *size)
		os.Exit(1)
	}

	bufSize, err := progress.ParseSize(*buffer)
	if err != nil {
		fmt.Println("Invalid buffer size", *buffer)
		os.Exit(1)
	}
	job.BufferSize = int(bufSize)

	job.Checksum, _ = fileio.ParseHashKind(*checksum)
	if job.Manifest && job.Checksum == fileio.HashNone {
		fmt.Println("Manifest requested without checksum. Using crc32")
		job.Checksum = fileio.HashCRC32
	}

	// Ctrl+C stops at the next buffer or line and discards the unfinished part.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	splitter := engine.New(progress.NewConsole(os.Stdout, *lines))
	splitter.WriteBuffer = cfg.WriteBuffer

	begin := time.Now()
	res, err := splitter.Split(ctx, job)
	stop()

	if err != nil {
		// Console reporter already printed the failure.
		os.Exit(exitCode(err))
	}

	fmt.Println("Wrote", len(res.Parts), "parts with", progress.FormatSize(res.Bytes), "in", time.Since(begin))
	if res.Manifest != "" {
		fmt.Println("Checksums written to", res.Manifest)
	}
}

// exitCode maps failure kinds to process exit codes
func exitCode(err error) int {
	switch {
	case errors.Is(err, engine.ErrCanceled):
		return 130
	case errors.Is(err, engine.ErrSizeMismatch):
		// Parts exist but may not reproduce the source.
		return 2
	default:
		return 1
	}
}
