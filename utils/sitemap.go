package utils

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapEntry is a site-absolute path ("/blog/post/x") with an optional last
// modification date.
type SitemapEntry struct {
	Path    string
	LastMod string
}

func GenerateSitemaps(outDir, origin string, entries []SitemapEntry) error {
	xmlOutput, err := GenerateSitemapContent(origin, entries)
	if err != nil {
		return err
	}

	err = os.WriteFile(filepath.Join(outDir, "sitemap.xml"), []byte(xmlOutput), 0644)
	return errors.WithStack(err)
}

// GenerateSitemapContent renders the sitemap document, XML header included.
func GenerateSitemapContent(origin string, entries []SitemapEntry) (string, error) {
	if origin == "" {
		return "", errors.New("sitemap needs an origin")
	}
	baseURL := strings.TrimSuffix(origin, "/")
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, entry := range entries {
		sitemap.Urls = append(sitemap.Urls, Url{
			Loc:     baseURL + entry.Path,
			LastMod: entry.LastMod,
		})
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	return xml.Header + string(xmlOutput), nil
}
