package content

import "time"

type Post struct {
	ID            string    `yaml:"-" json:"id"`
	Title         string    `yaml:"title" json:"title"`
	Description   string    `yaml:"description" json:"description"`
	Author        []string  `yaml:"author" json:"author"`
	PublishedDate time.Time `yaml:"publishedDate" json:"publishedDate"`
	Featured      bool      `yaml:"featured" json:"featured"`
	Draft         bool      `yaml:"draft" json:"draft"`
	Body          string    `yaml:"-" json:"-"`
}

type Author struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Email    string `json:"email,omitempty"`
}

type BlogStats struct {
	TotalPosts    int    `json:"totalPosts"`
	TotalWords    string `json:"totalWords"`
	TotalReadTime string `json:"totalReadTime"`
}

type AuthorStats struct {
	TotalAuthors   int    `json:"totalAuthors"`
	TopContributor string `json:"topContributor"`
}
