// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const easyPuzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

// mockHTTPClient serves a canned response and records requests.
type mockHTTPClient struct {
	status   int
	body     []byte
	requests atomic.Int64
	lastURL  atomic.Value
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.requests.Add(1)
	m.lastURL.Store(req.URL.String())
	return &http.Response{
		StatusCode: m.status,
		Body:       io.NopCloser(bytes.NewReader(m.body)),
		Header:     make(http.Header),
	}, nil
}

func boardJSON(t *testing.T, s string) []byte {
	t.Helper()
	g, err := puzzle.Parse(s)
	require.NoError(t, err)

	board := make([][]int, engine.Size)
	for r := range board {
		board[r] = make([]int, engine.Size)
		for c := range board[r] {
			board[r][c] = int(g[r][c])
		}
	}
	payload, err := json.Marshal(boardResponse{Board: board})
	require.NoError(t, err)
	return payload
}

func TestClient_Fetch(t *testing.T) {
	mock := &mockHTTPClient{status: http.StatusOK, body: boardJSON(t, easyPuzzle)}
	client, err := NewClient(Config{BaseURL: "http://corpus.test", Client: mock})
	require.NoError(t, err)

	g, err := client.Fetch(context.Background(), DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, easyPuzzle, puzzle.Format(g))
	assert.Equal(t, "http://corpus.test/board?difficulty=easy", mock.lastURL.Load())
}

func TestClient_Fetch_BadStatus(t *testing.T) {
	mock := &mockHTTPClient{status: http.StatusBadGateway, body: []byte("upstream down")}
	client, err := NewClient(Config{BaseURL: "http://corpus.test", Client: mock})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), DifficultyHard)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestClient_Fetch_BadDifficulty(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://corpus.test", Client: &mockHTTPClient{}})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "impossible")
	assert.ErrorIs(t, err, ErrBadDifficulty)
}

func TestClient_Fetch_MalformedBoard(t *testing.T) {
	mock := &mockHTTPClient{status: http.StatusOK, body: []byte(`{"board": [[1,2,3]]}`)}
	client, err := NewClient(Config{BaseURL: "http://corpus.test", Client: mock})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), DifficultyRandom)
	require.Error(t, err)
}

func TestClient_FetchBatch(t *testing.T) {
	mock := &mockHTTPClient{status: http.StatusOK, body: boardJSON(t, easyPuzzle)}
	client, err := NewClient(Config{BaseURL: "http://corpus.test", Client: mock, Workers: 4})
	require.NoError(t, err)

	grids, err := client.FetchBatch(context.Background(), DifficultyMedium, 10)
	require.NoError(t, err)
	require.Len(t, grids, 10)
	for _, g := range grids {
		assert.Equal(t, easyPuzzle, puzzle.Format(g))
	}
	assert.Equal(t, int64(10), mock.requests.Load())
}

func TestNewClient_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://sugoku.onrender.com", cfg.BaseURL)
	assert.Equal(t, 8, cfg.Workers)

	client, err := NewClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client.httpc)
	assert.NotNil(t, client.limiter)
}
