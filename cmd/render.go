/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
	"github.com/eslsoft/readflow/internal/usecase/render"
)

// renderCmd renders a bundle offline: no server, no database. Study sets come
// from plain word-list files, which makes the whole annotation pipeline easy
// to poke at from the shell.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a bundle JSON file to an annotated document",
	RunE: func(cmd *cobra.Command, args []string) error {
		bundlePath, _ := cmd.Flags().GetString("bundle")
		studyPath, _ := cmd.Flags().GetString("study-words")
		knownPath, _ := cmd.Flags().GetString("known-words")
		phrasesPath, _ := cmd.Flags().GetString("phrases")
		vocabPath, _ := cmd.Flags().GetString("vocab")
		offset, _ := cmd.Flags().GetInt("offset")
		limit, _ := cmd.Flags().GetInt("limit")
		activeSegment, _ := cmd.Flags().GetInt("active-segment")

		if bundlePath == "" {
			return fmt.Errorf("--bundle is required")
		}
		bundle, err := readBundleFile(bundlePath)
		if err != nil {
			return err
		}

		sets, err := readStudySets(vocabPath, studyPath, phrasesPath, knownPath)
		if err != nil {
			return err
		}

		logger := logrus.New()
		logger.SetOutput(cmd.ErrOrStderr())

		engine := annotate.NewAnnotator()
		registry := render.NewRegistry(logger)
		text := render.NewTextRenderer(engine)
		audio := render.NewAudioRenderer(engine)
		registry.RegisterAll([]render.Registration{
			{SourceType: entity.SourceTypeEpub, Renderer: text},
			{SourceType: entity.SourceTypeRSS, Renderer: text},
			{SourceType: entity.SourceTypePlainText, Renderer: text},
			{SourceType: entity.SourceTypeAudiobook, Renderer: audio},
			{SourceType: entity.SourceTypePodcast, Renderer: audio},
		})

		renderer := registry.RendererForBundle(bundle)
		if renderer == nil {
			return fmt.Errorf("no renderer accepts source type %q", bundle.SourceType)
		}

		doc, err := renderer.Render(cmd.Context(), render.Request{
			Bundle:        bundle,
			Sets:          sets,
			Offset:        offset,
			Limit:         limit,
			ActiveSegment: activeSegment,
		})
		if err != nil {
			return fmt.Errorf("render bundle: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("bundle", "", "bundle JSON file")
	renderCmd.Flags().String("study-words", "", "file with one study word per line")
	renderCmd.Flags().String("known-words", "", "file with one known word per line")
	renderCmd.Flags().String("phrases", "", "file with one studied phrase per line")
	renderCmd.Flags().String("vocab", "", "file with one highlight-list word per line")
	renderCmd.Flags().Int("offset", 0, "first sentence index to render")
	renderCmd.Flags().Int("limit", 0, "sentence window size, 0 renders everything")
	renderCmd.Flags().Int("active-segment", -1, "active audio segment index")
}

func readBundleFile(path string) (*entity.ContentBundle, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read bundle file: %w", err)
	}
	var bundle entity.ContentBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parse bundle file: %w", err)
	}
	return &bundle, nil
}

func readStudySets(vocabPath, studyPath, phrasesPath, knownPath string) (entity.StudySets, error) {
	var (
		sets entity.StudySets
		err  error
	)
	lists := make([][]string, 4)
	for i, path := range []string{vocabPath, studyPath, phrasesPath, knownPath} {
		if path == "" {
			continue
		}
		lists[i], err = readWordList(path)
		if err != nil {
			return sets, err
		}
	}
	return entity.NewStudySets(lists[0], lists[1], lists[2], lists[3]), nil
}

func readWordList(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	defer f.Close()
	return scanWordList(f)
}

func scanWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
