package specs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const specSuffix = ".spec.ts"

// SpecFile describes one generated Playwright spec file.
type SpecFile struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// RouteFile describes one route snapshot produced by endpoint discovery.
type RouteFile struct {
	Filename   string `json:"filename"`
	Repo       string `json:"repo"`
	RouteCount int    `json:"routeCount"`
}

// ListSpecFiles lists the generated test spec files in the given
// directory, sorted by filename. A missing directory yields an empty list.
func ListSpecFiles(dir string) ([]SpecFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SpecFile{}, nil
		}

		return nil, errors.Wrap(err, "couldn't read tests directory")
	}

	files := []SpecFile{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), specSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, SpecFile{
			Filename: entry.Name(),
			Name:     ServiceName(entry.Name()),
			Path:     filepath.Join(dir, entry.Name()),
			Size:     info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })

	return files, nil
}

// ListSpecFileNames returns just the filenames of the generated specs.
func ListSpecFileNames(dir string) ([]string, error) {
	files, err := ListSpecFiles(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(files))
	for i, file := range files {
		names[i] = file.Filename
	}

	return names, nil
}

// ListRouteFiles lists the route snapshot JSON files in the given
// directory. Unreadable or malformed snapshots degrade to Unknown/0
// instead of failing the listing.
func ListRouteFiles(dir string) ([]RouteFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RouteFile{}, nil
		}

		return nil, errors.Wrap(err, "couldn't read routes directory")
	}

	files := []RouteFile{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		routeFile := RouteFile{
			Filename: entry.Name(),
			Repo:     "Unknown",
		}

		var snapshot struct {
			Repo   string            `json:"repo"`
			Routes []json.RawMessage `json:"routes"`
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err == nil && json.Unmarshal(data, &snapshot) == nil {
			if snapshot.Repo != "" {
				routeFile.Repo = snapshot.Repo
			}
			routeFile.RouteCount = len(snapshot.Routes)
		}

		files = append(files, routeFile)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })

	return files, nil
}

// RemoveSpecFile deletes a generated spec file and its matching route
// snapshot, when one exists. Returns os.ErrNotExist when the spec file is
// missing; a leftover route snapshot alone is not an error.
func RemoveSpecFile(testsDir, routesDir, filename string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return errors.New("bad spec filename")
	}

	if err := os.Remove(filepath.Join(testsDir, filename)); err != nil {
		return err
	}

	routeName := strings.TrimSuffix(filename, specSuffix) + "-routes.json"
	if err := os.Remove(filepath.Join(routesDir, routeName)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "couldn't remove route snapshot")
	}

	return nil
}

// ServiceName derives a display name from a spec filename, e.g.
// "user-teams.spec.ts" becomes "User Teams".
func ServiceName(filename string) string {
	name := strings.TrimSuffix(filename, specSuffix)
	name = strings.ReplaceAll(name, "-", " ")

	words := strings.Fields(name)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}
