package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

var frontmatterFence = []byte("---")

// Store holds the blog and author collections read from a content directory
// laid out as <dir>/blog/**/*.mdx and <dir>/authors/*.json.
type Store struct {
	dir string

	mu      sync.RWMutex
	posts   []Post
	authors []Author
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Reload() error {
	posts, err := loadPosts(filepath.Join(s.dir, "blog"))
	if err != nil {
		return err
	}
	authors, err := loadAuthors(filepath.Join(s.dir, "authors"))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.posts = posts
	s.authors = authors
	s.mu.Unlock()
	return nil
}

func (s *Store) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Post(nil), s.posts...)
}

func (s *Store) Authors() []Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Author(nil), s.authors...)
}

func loadPosts(dir string) ([]Post, error) {
	var posts []Post
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".mdx" {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read post %s: %w", path, err)
		}
		rel, _ := filepath.Rel(dir, path)
		post, err := ParsePost(strings.TrimSuffix(filepath.ToSlash(rel), ".mdx"), raw)
		if err != nil {
			return fmt.Errorf("parse post %s: %w", path, err)
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func loadAuthors(dir string) ([]Author, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read authors dir: %w", err)
	}
	var authors []Author
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read author %s: %w", e.Name(), err)
		}
		var a Author
		if err := sonic.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("parse author %s: %w", e.Name(), err)
		}
		a.ID = strings.TrimSuffix(e.Name(), ".json")
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })
	return authors, nil
}

// ParsePost splits YAML frontmatter from the MDX body.
func ParsePost(id string, raw []byte) (Post, error) {
	post := Post{ID: id}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(raw, frontmatterFence) {
		return post, fmt.Errorf("missing frontmatter")
	}
	rest := bytes.TrimLeft(raw[len(frontmatterFence):], " \t")
	rest = bytes.TrimPrefix(bytes.TrimPrefix(rest, []byte("\r")), []byte("\n"))
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return post, fmt.Errorf("unterminated frontmatter")
	}
	if err := yaml.Unmarshal(rest[:end], &post); err != nil {
		return post, fmt.Errorf("decode frontmatter: %w", err)
	}
	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	post.Body = string(body)
	post.ID = id
	if post.Title == "" {
		return post, fmt.Errorf("title is required")
	}
	if len(post.Author) == 0 {
		return post, fmt.Errorf("at least one author is required")
	}
	return post, nil
}
