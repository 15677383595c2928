package production

import (
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/utils"
	"github.com/tidwall/gjson"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Export writes p into dir as <unix-nanos>-<slug>.json and returns the path.
func Export(dir string, p *Package) (string, error) {
	content, err := p.Marshal()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	name := fmt.Sprintf("%d-%s.json", time.Now().UnixNano(), utils.Slug(p.SeoData.Title))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("writing package: %w", err)
	}
	discord.Infof("Exported %s", path)
	return path, nil
}

// Exported describes one document in the output dir.
type Exported struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Size    int64  `json:"size"`
	ModTime int64  `json:"modTime"`
}

func populate(dir string, name string) *Exported {
	path := filepath.Join(dir, name)
	stat, err := os.Stat(path)
	if err != nil || stat.IsDir() {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	title := gjson.GetBytes(content, "seo_data.title")
	if !title.Exists() {
		return nil
	}
	return &Exported{
		Name:    name,
		Title:   title.String(),
		Size:    stat.Size(),
		ModTime: stat.ModTime().Unix(),
	}
}

// ListExports returns the packages in dir, newest first. A missing dir is
// an empty listing.
func ListExports(dir string) ([]*Exported, error) {
	exports := make([]*Exported, 0)
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return exports, nil
	}
	if err != nil {
		return exports, err
	}
	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		if e := populate(dir, file.Name()); e != nil {
			exports = append(exports, e)
		}
	}
	sort.Slice(exports, func(i, j int) bool {
		return exports[i].Name > exports[j].Name
	})
	return exports, nil
}

func NewExportsCache(dir string, ttl time.Duration) *Cache[[]*Exported] {
	return CreateCache[[]*Exported](ttl, func() ([]*Exported, error) {
		return ListExports(dir)
	})
}
