// Package extract turns raw mail messages into signals.
//
// Each message is classified by four independent keyword rules (ticket,
// meeting, task, promise) over its lowercased subject and body, and yields
// one signal per matching rule in that fixed order. Classification is a
// heuristic; the extractor never fails and degrades missing fields to empty
// values.
package extract
