// Package importer reads Netscape bookmark files (the format every browser
// exports) into the gateway's store.
package importer

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nikbrunner/bmjump/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns folders and
// bookmarks in document order. Anchors without an HREF are skipped and
// anchors without text use the HREF as title.
func ParseHTMLBookmarks(r io.Reader) ([]model.Folder, []model.Bookmark, error) {
	p := &parser{z: html.NewTokenizer(r)}
	if err := p.run(); err != nil {
		return nil, nil, err
	}
	return p.folders, p.bookmarks, nil
}

type parser struct {
	z *html.Tokenizer

	folders   []model.Folder
	bookmarks []model.Bookmark

	// open holds the IDs of folders whose <DL> is currently open.
	open []string
	// lists records, per open <DL>, whether it opened a folder.
	lists []bool
	// announced is the folder named by the last </H3>, waiting for its <DL>.
	announced string

	text    strings.Builder
	inTitle bool
	inLink  bool
	href    string
	addDate string
}

func (p *parser) run() error {
	for {
		switch p.z.Next() {
		case html.ErrorToken:
			if err := p.z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			return nil

		case html.StartTagToken, html.SelfClosingTagToken:
			p.startTag()

		case html.EndTagToken:
			p.endTag()

		case html.TextToken:
			if p.inTitle || p.inLink {
				p.text.Write(p.z.Text())
			}
		}
	}
}

func (p *parser) startTag() {
	name, hasAttr := p.z.TagName()

	switch atom.Lookup(name) {
	case atom.H3:
		p.inTitle = true
		p.text.Reset()

	case atom.A:
		p.inLink = true
		p.text.Reset()
		p.href, p.addDate = "", ""
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = p.z.TagAttr()
			switch strings.ToLower(string(key)) {
			case "href":
				p.href = string(val)
			case "add_date":
				p.addDate = string(val)
			}
		}

	case atom.Dl:
		opened := p.announced != ""
		if opened {
			p.open = append(p.open, p.announced)
			p.announced = ""
		}
		p.lists = append(p.lists, opened)
	}
}

func (p *parser) endTag() {
	name, _ := p.z.TagName()

	switch atom.Lookup(name) {
	case atom.H3:
		p.inTitle = false
		folderName := strings.TrimSpace(p.text.String())
		if folderName == "" {
			return
		}
		folder := model.NewFolder(model.NewFolderParams{Name: folderName, ParentID: p.parent()})
		p.folders = append(p.folders, folder)
		p.announced = folder.ID

	case atom.A:
		p.inLink = false
		if p.href == "" {
			return
		}
		b := model.NewBookmark(model.NewBookmarkParams{
			Title:    strings.TrimSpace(p.text.String()),
			URL:      p.href,
			FolderID: p.parent(),
		})
		if ts, err := strconv.ParseInt(p.addDate, 10, 64); err == nil {
			b.CreatedAt = time.Unix(ts, 0)
		}
		p.bookmarks = append(p.bookmarks, b)

	case atom.Dl:
		if len(p.lists) == 0 {
			return
		}
		last := len(p.lists) - 1
		if p.lists[last] && len(p.open) > 0 {
			p.open = p.open[:len(p.open)-1]
		}
		p.lists = p.lists[:last]
	}
}

// parent returns the innermost open folder, nil at root.
func (p *parser) parent() *string {
	if len(p.open) == 0 {
		return nil
	}
	id := p.open[len(p.open)-1]
	return &id
}
