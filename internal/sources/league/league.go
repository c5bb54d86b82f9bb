// Package league fetches the externally visible "already registered"
// roster by scraping a league fixture page. The page lists each
// registered player as a link to their stats page; the link text is the
// player's display name.
//
// This is a thin adapter: it retrieves raw "First Last" strings and
// delegates to the identity normalizer. Any network failure or
// unexpected page shape surfaces as a source-unavailable error, which
// is fatal for the reconciliation run. Retries, if wanted, belong to
// the caller.
package league

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/actonians/regsync/internal/transport"
	"github.com/actonians/regsync/pkg/errors"
	"github.com/actonians/regsync/pkg/identity"
	"github.com/actonians/regsync/pkg/logging"
)

// sourceName identifies this collaborator in errors and logs.
const sourceName = "league"

// playerLink matches the href of a player stats link on the fixture page.
var playerLink = regexp.MustCompile(`DisplayStatsForPlayer`)

// Fetcher scrapes registered player identities from a fixture page.
type Fetcher struct {
	url    string
	client *transport.Client
}

// New creates a Fetcher for the given fixture page URL.
func New(url string, client *transport.Client) *Fetcher {
	if client == nil {
		client = transport.New()
	}
	return &Fetcher{url: url, client: client}
}

// Roster fetches and parses the externally registered player list.
func (f *Fetcher) Roster(ctx context.Context) ([]identity.Identity, error) {
	resp, err := f.client.Get(ctx, f.url)
	if err != nil {
		return nil, errors.WrapSource(sourceName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewSourceError(sourceName,
			fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, f.url), nil)
	}

	names, err := extractPlayerNames(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.NewSourceError(sourceName, "no player links found on "+f.url, nil)
	}

	roster := make([]identity.Identity, 0, len(names))
	for _, name := range names {
		id, err := identity.Normalize(name)
		if err != nil {
			return nil, errors.NewSourceError(sourceName,
				fmt.Sprintf("unparseable player name %q", name), err)
		}
		roster = append(roster, id)
	}

	logging.Ctx(ctx).Debug().Int("players", len(roster)).Str("url", f.url).
		Msg("Scraped external roster")
	return roster, nil
}

// extractPlayerNames walks the page and collects the text of every
// anchor whose href points at a player stats page.
func extractPlayerNames(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.NewSourceError(sourceName, "cannot parse fixture page", err)
	}

	var names []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && playerLink.MatchString(attr.Val) {
					if name := nodeText(n); name != "" {
						names = append(names, name)
					}
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return names, nil
}

// nodeText returns the trimmed concatenation of a node's text content.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
