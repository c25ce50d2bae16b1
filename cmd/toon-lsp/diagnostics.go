package main

import (
	"context"
	"strings"
	"sync"

	"github.com/toon-format/go-toon/diag"
	"github.com/toon-format/go-toon/parse"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	res     *parse.Result
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	res, err := parse.Parse([]byte(content))
	if err != nil {
		// nil only happens for oversized input; keep the content
		// with no result so diagnostics report nothing stale
		res = nil
	}
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
		res:     res,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.validateDocument(doc)

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func (s *Server) validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.res == nil {
		return diagnostics
	}
	for _, e := range doc.res.Errors {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    errRange(doc.content, e),
			Severity: severity(e.Code),
			Code:     string(e.Code),
			Message:  e.Message,
			Source:   "toon",
		})
	}
	return diagnostics
}

// errRange converts a recorded error position to an LSP range. The
// recorded length is in bytes on the error's line; a length that would
// run past the line is clamped to the line end.
func errRange(content string, e *diag.Error) protocol.Range {
	start := protocol.Position{Line: uint32(e.Line), Character: uint32(e.Col)}
	length := e.Length
	if length <= 0 {
		length = 1
	}
	if lineLen := lineLength(content, e.Line); e.Col+length > lineLen {
		length = lineLen - e.Col
		if length < 1 {
			length = 1
		}
	}
	return protocol.Range{
		Start: start,
		End:   protocol.Position{Line: uint32(e.Line), Character: uint32(e.Col + length)},
	}
}

func lineLength(content string, line int) int {
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(content, '\n')
		if nl < 0 {
			return 0
		}
		content = content[nl+1:]
	}
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		return nl
	}
	return len(content)
}

// severity downgrades size declarations to warnings: the tree is still
// complete, only the author's stated cardinality is off.
func severity(code diag.Code) protocol.DiagnosticSeverity {
	switch code {
	case diag.CodeArraySizeMismatch, diag.CodeTableSizeMismatch:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		rangeVal := change.Range
		if rangeVal.Start.Line == 0 && rangeVal.Start.Character == 0 &&
			rangeVal.End.Line == 0 && rangeVal.End.Character == 0 {
			// full document replacement
			content = change.Text
			continue
		}
		startOffset := lineColToOffset(content, int(rangeVal.Start.Line), int(rangeVal.Start.Character))
		endOffset := lineColToOffset(content, int(rangeVal.End.Line), int(rangeVal.End.Character))
		if startOffset <= len(content) && endOffset <= len(content) && startOffset <= endOffset {
			content = content[:startOffset] + change.Text + content[endOffset:]
		}
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	for i := range content {
		if currentLine == line && currentCol == col {
			return i
		}
		if content[i] == '\n' {
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
	}
	return len(content)
}
