package helpers

import (
	"fmt"
	"io"
	"os"
)

// FileMove moves a file from a source path to a destination path via
// copy+remove. os.Rename fails with "invalid cross-device link" when the
// reports directory is mounted as a Docker volume, so it cannot be used
// for report archiving.
func FileMove(sourcePath, destPath string) error {
	sourceFileStat, err := os.Stat(sourcePath)
	if err != nil {
		return err
	}

	destFileStat, err := os.Stat(destPath)
	if err == nil {
		if sourcePath == destPath || os.SameFile(sourceFileStat, destFileStat) {
			return fmt.Errorf("files %s and %s are the same", sourcePath, destPath)
		}
	}

	inputFile, err := os.Open(sourcePath)
	if err != nil {
		return err
	}

	outputFile, err := os.Create(destPath)
	if err != nil {
		inputFile.Close()
		return err
	}

	_, err = io.Copy(outputFile, inputFile)
	inputFile.Close()
	outputFile.Close()

	if err != nil {
		if errRem := os.Remove(destPath); errRem != nil {
			return fmt.Errorf(
				"unable to os.Remove error: %s after io.Copy error: %s",
				errRem,
				err,
			)
		}

		return err
	}

	return os.Remove(sourcePath)
}
