package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/fs"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	files, err := fs.ReadDocuments(c.Dir, c.Glob)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
		return err
	}
	if len(files) == 0 {
		return apotheek.Errorf(apotheek.ENOTFOUND, "no %s files in %s", c.Glob, c.Dir)
	}

	if c.Reset {
		if err := deps.Chunks.DeleteAllChunks(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, "Index emptied")
	}

	var added int
	var dimension int
	for _, df := range files {
		chunks := apotheek.FlattenDocument(df.Doc, filepath.Base(df.Path))
		if len(chunks) == 0 {
			fmt.Fprintf(deps.Stdout, "  %s: no text\n", filepath.Base(df.Path))
			continue
		}

		texts := make([]string, len(chunks))
		for i := range chunks {
			texts[i] = chunks[i].Text
		}

		vectors, err := deps.Embedder.EmbedDocuments(deps.Ctx, texts)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error embedding %s: %s\n", filepath.Base(df.Path), apotheek.ErrorMessage(err))
			return err
		}
		for i := range chunks {
			chunks[i].Embedding = vectors[i]
		}
		dimension = len(vectors[0])

		if err := deps.Chunks.CreateChunks(deps.Ctx, chunks); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
			return err
		}

		added += len(chunks)
		fmt.Fprintf(deps.Stdout, "  %s: %d chunks\n", filepath.Base(df.Path), len(chunks))
	}

	if err := deps.DB.SetConfig(deps.Ctx, "embedding_model", embeddingModel(deps)); err != nil {
		return err
	}
	if err := deps.DB.SetConfig(deps.Ctx, "dimension", strconv.Itoa(dimension)); err != nil {
		return err
	}

	total, err := deps.Chunks.CountChunks(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Indexed %d chunks from %d files (%d total in index)\n",
		added, len(files), total)
	return nil
}
