package resolver

import (
	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/core/catalog"
	"recipe-assistant/internal/core/format"
	"recipe-assistant/internal/core/query"
)

// Dependencies 組裝標準 tier 鏈所需的協作者
type Dependencies struct {
	Catalog   *catalog.Catalog
	TiePolicy catalog.TiePolicy

	// Completer 為 nil 時 GENERATIVE 永遠回報無法使用，原因為 CompleterErr
	Completer    provider.Completer
	CompleterErr error
	Accept       Acceptability

	Searcher      RecipeSearcher
	SearchWorkers int

	Observer Observer
}

// Build 依 LOCAL → GENERATIVE → EXTERNAL_SEARCH → CANNED 組裝 Resolver
func Build(deps Dependencies) (*Resolver, error) {
	formatter := format.New()

	search, err := NewSearchTier(deps.Searcher, formatter, deps.SearchWorkers)
	if err != nil {
		return nil, err
	}

	tiers := []Tier{
		NewLocalTier(catalog.NewMatcher(deps.Catalog, deps.TiePolicy), formatter),
		NewGenerativeTier(deps.Completer, deps.CompleterErr, deps.Accept, formatter),
		search,
		NewCannedTier(formatter),
	}

	parser := query.NewParser(query.NewCorrector(deps.Catalog.Vocabulary()))

	var opts []Option
	if deps.Observer != nil {
		opts = append(opts, WithObserver(deps.Observer))
	}
	return New(parser, tiers, opts...), nil
}

// Close 釋放 tier 持有的資源
func (r *Resolver) Close() {
	for _, t := range r.tiers {
		if rel, ok := t.(interface{ Release() }); ok {
			rel.Release()
		}
	}
}
