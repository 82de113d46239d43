package processor

import (
	"github.com/nguyentantai21042004/caseclip/internal/brief"
	"github.com/nguyentantai21042004/caseclip/internal/catalog"
	"github.com/nguyentantai21042004/caseclip/internal/clipper"
	"github.com/nguyentantai21042004/caseclip/internal/enrichment"
	"github.com/nguyentantai21042004/caseclip/internal/events"
	"github.com/nguyentantai21042004/caseclip/internal/ledger"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
	"github.com/nguyentantai21042004/caseclip/internal/metrics"
	"github.com/nguyentantai21042004/caseclip/internal/segmenter"
	"github.com/nguyentantai21042004/caseclip/internal/transcript"
)

// Deps are the pipeline stages. Brief and Events are optional.
type Deps struct {
	Source    transcript.Source
	Segmenter segmenter.Segmenter
	Enricher  enrichment.Enricher
	Extractor clipper.Extractor
	Ledger    ledger.Ledger
	Catalog   catalog.Writer
	Brief     brief.Writer
	Events    events.Publisher
}

type implProcessor struct {
	source    transcript.Source
	segmenter segmenter.Segmenter
	enricher  enrichment.Enricher
	extractor clipper.Extractor
	ledger    ledger.Ledger
	catalog   catalog.Writer
	brief     brief.Writer
	events    events.Publisher
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// New creates a Processor. m may be nil.
func New(deps Deps, log logger.Logger, m *metrics.Metrics) Processor {
	return &implProcessor{
		source:    deps.Source,
		segmenter: deps.Segmenter,
		enricher:  deps.Enricher,
		extractor: deps.Extractor,
		ledger:    deps.Ledger,
		catalog:   deps.Catalog,
		brief:     deps.Brief,
		events:    deps.Events,
		logger:    log,
		metrics:   m,
	}
}
