package pipeline

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/WinstonAC/winston-global-scraper/internal/classify"
	"github.com/WinstonAC/winston-global-scraper/internal/config"
	"github.com/WinstonAC/winston-global-scraper/internal/export"
	"github.com/WinstonAC/winston-global-scraper/internal/extract"
	"github.com/WinstonAC/winston-global-scraper/internal/fetch"
	"github.com/WinstonAC/winston-global-scraper/internal/leads"
	"github.com/WinstonAC/winston-global-scraper/internal/score"
	"github.com/WinstonAC/winston-global-scraper/internal/search"
)

// Pipeline orchestrates one scrape run per request. It holds no per-run
// state; the only shared mutable state is the artifact store and the browser
// session gate, both safe for concurrent use.
type Pipeline struct {
	cfg        config.Config
	searcher   search.Searcher
	fetcher    fetch.PageFetcher
	extractor  *extract.Extractor
	classifier *classify.Classifier
	store      export.Store
}

// New wires a pipeline from its collaborators.
func New(cfg config.Config, searcher search.Searcher, fetcher fetch.PageFetcher, store export.Store) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		searcher: searcher,
		fetcher:  fetcher,
		extractor: extract.New(extract.Limits{
			MaxEmails:    cfg.MaxEmails,
			MaxPhones:    cfg.MaxPhones,
			MaxSocial:    cfg.MaxSocial,
			NameWindow:   cfg.NameWindow,
			MaxJobTitles: cfg.MaxJobTitles,
		}),
		classifier: classify.Default(),
		store:      store,
	}
}

// Summary reports batch run statistics.
type Summary struct {
	TotalResults      int `json:"totalResults"`
	KeywordsProcessed int `json:"keywordsProcessed"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
}

// Result is the payload returned for every successful run: machine-readable
// rows plus a ready-to-download CSV, so callers never re-derive one from the
// other. Rows may be empty; that is a valid "no leads found" outcome.
type Result struct {
	Rows       []leads.ContactRecord `json:"rows"`
	CSVID      string                `json:"csvId,omitempty"`
	CSVData    string                `json:"csvData"`
	Pagination *leads.Pagination     `json:"pagination,omitempty"`
	Truncated  bool                  `json:"truncated,omitempty"`
	Summary    *Summary              `json:"summary,omitempty"`
}

// RunOptions carries per-request presentation knobs.
type RunOptions struct {
	Page  int    // 1-based result page; 0 disables pagination
	Limit int    // rows per page
	Tier  string // quality tier filter: all, good, excellent
}

// RunKeyword executes a single-keyword scrape: discover candidate links,
// fetch and extract the top pages sequentially, then aggregate and export.
func (p *Pipeline) RunKeyword(ctx context.Context, keyword string, opts RunOptions) (*Result, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &InputError{Message: "keyword is required"}
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.RunTimeout())
	defer cancel()

	records, truncated, err := p.scrapeKeyword(ctx, keyword, "")
	if err != nil {
		return nil, err
	}

	return p.assemble(ctx, records, truncated, opts, nil)
}

// RunBatch executes up to MaxBatchKeywords keyword scrapes inside one run,
// deduplicating by URL and by contact identity across keywords.
func (p *Pipeline) RunBatch(ctx context.Context, keywords []string, opts RunOptions) (*Result, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if len(cleaned) == 0 {
		return nil, &InputError{Message: "keywords array is required"}
	}
	if len(cleaned) > p.cfg.MaxBatchKeywords {
		return nil, &InputError{Message: "too many keywords per batch"}
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.RunTimeout()*time.Duration(len(cleaned)))
	defer cancel()

	var all []leads.ContactRecord
	truncated := false
	for _, keyword := range cleaned {
		records, trunc, err := p.scrapeKeyword(ctx, keyword, keyword)
		if err != nil {
			// A keyword failing wholesale (search unavailable mid-batch) is
			// recovered like a per-candidate failure: skip and continue.
			log.Printf("[pipeline] keyword %q failed: %v", keyword, err)
			if isTimeout(err) {
				truncated = true
				break
			}
			continue
		}
		all = append(all, records...)
		if trunc {
			truncated = true
			break
		}
	}

	summary := &Summary{KeywordsProcessed: len(cleaned)}
	res, err := p.assembleBatch(ctx, all, truncated, opts, summary)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RunURL scrapes one page directly, without search discovery.
func (p *Pipeline) RunURL(ctx context.Context, rawURL string) (*Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, &InputError{Message: "url is required"}
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	if u, err := url.Parse(rawURL); err != nil || u.Host == "" {
		return nil, &InputError{Message: "url is not valid"}
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.RunTimeout())
	defer cancel()

	page, err := p.fetcher.Fetch(ctx, rawURL, p.cfg.PageTimeout())
	if err != nil {
		if errors.Is(err, fetch.ErrBrowserBusy) {
			return nil, &UnavailableError{Message: "browser session unavailable", Cause: err}
		}
		if isTimeout(err) || ctx.Err() != nil {
			return nil, &TimeoutError{Message: "page fetch exceeded run budget"}
		}
		return nil, &UnavailableError{Message: "failed to fetch page", Cause: err}
	}

	record := p.buildRecord(leads.CandidateLink{Title: page.Title, URL: rawURL}, page, "")
	return p.assemble(ctx, []leads.ContactRecord{record}, false, RunOptions{}, nil)
}

// scrapeKeyword discovers candidates for one keyword and extracts records
// from the top pages, sequentially. Per-candidate failures are skipped; the
// run is only aborted wholesale when discovery itself fails.
func (p *Pipeline) scrapeKeyword(ctx context.Context, keyword, tagKeyword string) ([]leads.ContactRecord, bool, error) {
	links, err := p.searcher.Discover(ctx, keyword, p.cfg.MaxLinks)
	if err != nil {
		if errors.Is(err, fetch.ErrBrowserBusy) {
			return nil, false, &UnavailableError{Message: "browser session unavailable", Cause: err}
		}
		if isTimeout(err) || ctx.Err() != nil {
			return nil, false, &TimeoutError{Message: "search discovery exceeded run budget"}
		}
		return nil, false, &UnavailableError{Message: "search discovery failed", Cause: err}
	}
	log.Printf("[pipeline] keyword %q: %d candidate links", keyword, len(links))

	if len(links) > p.cfg.MaxPages {
		links = links[:p.cfg.MaxPages]
	}

	records := make([]leads.ContactRecord, 0, len(links))
	for _, link := range links {
		if ctx.Err() != nil {
			// Run budget exhausted; return what we have with a truncation
			// flag instead of discarding partial results.
			return records, true, nil
		}

		page, err := p.fetcher.Fetch(ctx, link.URL, p.cfg.PageTimeout())
		if err != nil {
			log.Printf("[pipeline] skipping %s: %v", link.URL, err)
			continue
		}

		records = append(records, p.buildRecord(link, page, tagKeyword))
	}
	return records, false, nil
}

// buildRecord runs extraction, classification, and scoring for one fetched
// page. The record is immutable afterwards.
func (p *Pipeline) buildRecord(link leads.CandidateLink, page *fetch.Result, keyword string) leads.ContactRecord {
	source := leads.PageSource{URL: link.URL, Title: link.Title, HTML: page.HTML}
	if source.Title == "" {
		source.Title = page.Title
	}

	record := p.extractor.Extract(source)
	record.Tags = p.classifier.Classify(source.Title + " " + page.HTML)
	record.Keyword = keyword
	record.QualityScore = score.Record(record)
	return record
}

// assemble aggregates, paginates, and exports one run's records.
func (p *Pipeline) assemble(ctx context.Context, records []leads.ContactRecord, truncated bool, opts RunOptions, summary *Summary) (*Result, error) {
	rs := leads.Aggregate(records, leads.AggregateOptions{
		MinScore: leads.TierMinScore(opts.Tier),
	})
	return p.finish(ctx, rs, truncated, opts, summary, len(records))
}

// assembleBatch is assemble with cross-keyword contact-identity tracking.
func (p *Pipeline) assembleBatch(ctx context.Context, records []leads.ContactRecord, truncated bool, opts RunOptions, summary *Summary) (*Result, error) {
	rs := leads.Aggregate(records, leads.AggregateOptions{
		TrackContacts: true,
		MinScore:      leads.TierMinScore(opts.Tier),
	})
	return p.finish(ctx, rs, truncated, opts, summary, len(records))
}

func (p *Pipeline) finish(ctx context.Context, rs leads.ResultSet, truncated bool, opts RunOptions, summary *Summary, collected int) (*Result, error) {
	csvText := export.CSV(rs.Records)

	// Saving uses a fresh context: the run budget may already be exhausted
	// and the artifact should still be stored for download.
	id, err := p.store.Save(context.WithoutCancel(ctx), csvText)
	if err != nil {
		log.Printf("[pipeline] failed to store artifact: %v", err)
		id = ""
	}

	rows := rs.Records
	var pagination *leads.Pagination
	if opts.Page > 0 && opts.Limit > 0 {
		var meta leads.Pagination
		rows, meta = leads.Paginate(rs, opts.Page, opts.Limit)
		pagination = &meta
	}
	if rows == nil {
		rows = []leads.ContactRecord{}
	}

	if summary != nil {
		summary.TotalResults = len(rs.Records)
		summary.DuplicatesRemoved = collected - rs.TotalBeforeFilter
	}

	return &Result{
		Rows:       rows,
		CSVID:      id,
		CSVData:    csvText,
		Pagination: pagination,
		Truncated:  truncated,
		Summary:    summary,
	}, nil
}

// isTimeout reports whether an error chain ends in a deadline expiry.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
