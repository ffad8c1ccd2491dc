package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/jcdavis/cobb2/pkg/autocomplete"
	"github.com/jcdavis/cobb2/pkg/errors"
	"github.com/jcdavis/cobb2/pkg/filesys"
	"github.com/jcdavis/cobb2/pkg/options"
)

// loadCorpus builds a fresh Instance from the given options and bulk-upserts
// every well-formed "score\tstring" line of path into it. A malformed line
// is logged and skipped rather than aborting the whole load, matching the
// recovery policy pkg/errors.ErrorCodeIngestMalformedLine documents.
func loadCorpus(ctx context.Context, log *zap.SugaredLogger, path string, opts ...options.OptionFunc) (*autocomplete.Instance, error) {
	if exists, err := filesys.Exists(path); err != nil {
		return nil, errors.ClassifyFileOpenError(err, path)
	} else if !exists {
		return nil, errors.NewIngestError(
			nil, errors.ErrorCodeIngestUnreadableFile, "source file does not exist",
		).WithPath(path)
	}

	contents, err := filesys.ReadFile(path)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path)
	}

	instance, err := autocomplete.NewInstance(ctx, "autocompleted", opts...)
	if err != nil {
		return nil, err
	}

	loaded, skipped := 0, 0
	scanner := bufio.NewScanner(bytes.NewReader(contents))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		tab := bytes.IndexByte(line, '\t')
		if tab < 0 {
			logMalformedLine(log, path, lineNo, "missing score/string separator")
			skipped++
			continue
		}

		score, err := strconv.ParseUint(string(line[:tab]), 10, 32)
		if err != nil {
			logMalformedLine(log, path, lineNo, "score is not a valid unsigned integer")
			skipped++
			continue
		}

		text := line[tab+1:]
		if len(text) == 0 {
			logMalformedLine(log, path, lineNo, "string portion is empty")
			skipped++
			continue
		}

		if err := instance.Upsert(ctx, string(text), uint32(score)); err != nil {
			log.Warnw("upsert failed during bulk load", "path", path, "line", lineNo, "error", err)
			skipped++
			continue
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIngestError(err, errors.ErrorCodeIngestUnreadableFile, "failed reading source file").WithPath(path)
	}

	fmt.Printf("loaded %d entries from %s (%d skipped)\n", loaded, path, skipped)
	return instance, nil
}

// logMalformedLine builds the IngestError pkg/errors reserves for this case
// purely to log it with the code and line it carries; the load itself
// continues with the next line.
func logMalformedLine(log *zap.SugaredLogger, path string, lineNo int, reason string) {
	err := errors.NewIngestError(nil, errors.ErrorCodeIngestMalformedLine, reason).WithPath(path).WithLine(lineNo)
	log.Warnw("skipping malformed corpus line", "error", err, "code", err.Code(), "line", err.Line())
}
