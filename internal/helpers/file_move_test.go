package helpers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

var testDir string

func createTestFile(dst string, content string) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	if err != nil {
		return err
	}

	return nil
}

func TestMain(m *testing.M) {
	var err error
	testDir, err = os.MkdirTemp("", "apitestdash_helpers_test")
	if err != nil {
		fmt.Println("Couldn't create directory for test content:", err.Error())
		os.Exit(1)
	}

	exitVal := m.Run()

	err = os.RemoveAll(testDir)
	if err != nil {
		fmt.Println("Couldn't remove directory for test content:", err.Error())
		os.Exit(1)
	}

	os.Exit(exitVal)
}

func TestFileMoveSourceFileNotExist(t *testing.T) {
	srcFile := filepath.Join(testDir, "report_not_exist.json")
	dstFile := filepath.Join(testDir, "previous.json")

	err := FileMove(srcFile, dstFile)
	if err == nil {
		t.Errorf("try to move file that is not existed, err must not be nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err must be os.ErrNotExist")
	}
}

func TestFileMoveSourceDestinationTheSamePath(t *testing.T) {
	srcFile := filepath.Join(testDir, "report.json")

	err := createTestFile(srcFile, "{}")
	if err != nil {
		t.Errorf("couldn't create test file: %v", err)
	}
	defer os.Remove(srcFile)

	err = FileMove(srcFile, srcFile)
	if err == nil {
		t.Errorf("moving a file onto itself must fail")
	}
}

func TestFileMoveSourceDestinationTheSameFile(t *testing.T) {
	srcFile := filepath.Join(testDir, "report_linked.json")
	dstFile := filepath.Join(testDir, "report_link.json")

	err := createTestFile(srcFile, "{}")
	if err != nil {
		t.Errorf("couldn't create test file: %v", err)
	}
	defer os.Remove(srcFile)

	err = os.Link(srcFile, dstFile)
	if err != nil {
		t.Errorf("couldn't create link for test file: %v", err)
	}
	defer os.Remove(dstFile)

	err = FileMove(srcFile, dstFile)
	if err == nil {
		t.Errorf("moving a file onto a hard link of itself must fail")
	}
}

func TestFileMove(t *testing.T) {
	srcFile := filepath.Join(testDir, "index.json")
	dstFile := filepath.Join(testDir, "archived.json")
	fileContent := `{"suites": []}`

	err := createTestFile(srcFile, fileContent)
	if err != nil {
		t.Errorf("couldn't create test file: %v", err)
	}

	err = FileMove(srcFile, dstFile)
	if err != nil {
		t.Errorf("couldn't move file: %v", err)
	}
	defer os.Remove(dstFile)

	if _, err = os.Stat(srcFile); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("source file must be removed after the move")
	}

	content, err := os.ReadFile(dstFile)
	if err != nil {
		t.Errorf("couldn't read moved file: %v", err)
	}
	if string(content) != fileContent {
		t.Errorf("got %q, want %q", string(content), fileContent)
	}
}
