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
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/eslsoft/readflow/internal/adapter/repository"
	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/infrastructure/config"
	"github.com/eslsoft/readflow/internal/infrastructure/database"
	dbpkg "github.com/eslsoft/readflow/internal/infrastructure/database/db"
	"github.com/eslsoft/readflow/internal/infrastructure/database/migrate"
)

// dbInitCmd initializes the database schema then imports the word frequency
// list backing the vocabulary highlight set.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "初始化数据库并导入词频表",
	Long:  "执行数据库迁移并导入词频表 (vocab_words)。如需仅迁移不导入，可使用 --schema-only。",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		file, _ := cmd.Flags().GetString("file")
		limit, _ := cmd.Flags().GetInt("limit")
		tierSize, _ := cmd.Flags().GetInt("tier-size")
		schemaOnly, _ := cmd.Flags().GetBool("schema-only")
		cacheDir, _ := cmd.Flags().GetString("cache-dir")
		noCache, _ := cmd.Flags().GetBool("no-cache")
		if err := runMigrations(cmd.Context()); err != nil {
			return err
		}
		if schemaOnly {
			return nil
		}
		return importFrequencyList(cmd.Context(), frequencyImportOptions{
			URL:      url,
			File:     file,
			Limit:    limit,
			TierSize: tierSize,
			CacheDir: cacheDir,
			NoCache:  noCache,
		})
	},
}

// 默认词频表: hermitdave/FrequencyWords, 每行 "word count", 行号即词频排名
const frequencyListURL = "https://raw.githubusercontent.com/hermitdave/FrequencyWords/master/content/2018/en/en_50k.txt"

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().String("url", frequencyListURL, "词频表下载地址")
	dbInitCmd.Flags().String("file", "", "本地词频表路径 (优先于 --url)")
	dbInitCmd.Flags().Int("limit", 50000, "最多导入的词数, 0 表示不限制")
	dbInitCmd.Flags().Int("tier-size", 1000, "每个词频档位包含的词数")
	dbInitCmd.Flags().Bool("schema-only", false, "仅执行数据库迁移，不导入词频表")
	dbInitCmd.Flags().String("cache-dir", "", "词频表缓存目录 (默认: 用户缓存目录/readflow)")
	dbInitCmd.Flags().Bool("no-cache", false, "忽略本地缓存, 强制重新下载")
}

type frequencyImportOptions struct {
	URL      string
	File     string
	Limit    int
	TierSize int
	CacheDir string
	NoCache  bool
}

func importFrequencyList(ctx context.Context, opts frequencyImportOptions) error {
	start := time.Now()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return err
	}
	if driver != "postgres" {
		return fmt.Errorf("词频表导入仅支持 postgres, 当前驱动: %s", driver)
	}

	path := opts.File
	if path == "" {
		cached, fromCache, resolveErr := resolveFrequencyFile(ctx, opts.URL, opts.CacheDir, opts.NoCache)
		if resolveErr != nil {
			return resolveErr
		}
		if fromCache {
			log.Printf("使用缓存文件: %s", cached)
		} else {
			log.Printf("已下载词频表: %s", cached)
		}
		path = cached
	} else {
		log.Printf("使用本地词频表: %s", path)
	}

	words, err := readFrequencyList(path, opts.Limit, opts.TierSize)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("词频表为空: %s", path)
	}

	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := repository.NewVocabRepository(pool, dbpkg.New(pool))
	inserted, err := repo.BulkInsert(ctx, words)
	if err != nil {
		return fmt.Errorf("导入词频表失败: %w", err)
	}

	log.Printf("导入完成: %d 条, 耗时 %s", inserted, time.Since(start))
	return nil
}

// resolveFrequencyFile downloads the list into the cache directory, reusing a
// previous download keyed by the URL hash unless noCache is set.
func resolveFrequencyFile(ctx context.Context, url, cacheDirFlag string, noCache bool) (string, bool, error) {
	cacheDir := cacheDirFlag
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", false, fmt.Errorf("解析缓存目录失败: %w", err)
		}
		cacheDir = filepath.Join(base, "readflow")
	}
	sum := sha256.Sum256([]byte(url))
	path := filepath.Join(cacheDir, "freq-"+hex.EncodeToString(sum[:8])+".txt")

	if !noCache {
		if _, err := os.Stat(path); err == nil {
			return path, true, nil
		}
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", false, fmt.Errorf("创建缓存目录失败: %w", err)
	}
	if err := downloadFile(ctx, url, path); err != nil {
		return "", false, err
	}
	return path, false, nil
}

func downloadFile(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("下载失败: %s", resp.Status)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return nil
}

// readFrequencyList parses "word [count]" lines in rank order. Entries that
// are not single alphabetic words are skipped without consuming a rank.
func readFrequencyList(path string, limit, tierSize int) ([]entity.VocabWord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("打开词频表失败: %w", err)
	}
	defer f.Close()

	if tierSize <= 0 {
		tierSize = 1000
	}

	var words []entity.VocabWord
	rank := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word, ok := parseFrequencyLine(scanner.Text())
		if !ok {
			continue
		}
		rank++
		words = append(words, entity.VocabWord{
			Word: word,
			Rank: int32(rank),
			Tier: tierFor(rank, tierSize),
		})
		if limit > 0 && len(words) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func parseFrequencyLine(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	word := strings.ToLower(fields[0])
	if !isSingleWord(word) {
		return "", false
	}
	return word, true
}

func isSingleWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}

func tierFor(rank, tierSize int) int32 {
	return int32((rank-1)/tierSize + 1)
}

// runMigrations applies the schema migrations to the target database.
func runMigrations(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	sqldb, cleanup, err := database.OpenSQL(cfg)
	if err != nil {
		return fmt.Errorf("打开数据库失败: %w", err)
	}
	defer cleanup()

	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return err
	}
	drv, err := database.EntDriver(driver, sqldb)
	if err != nil {
		return err
	}
	if err := migrate.Create(ctx, drv); err != nil {
		return fmt.Errorf("执行数据库迁移失败: %w", err)
	}
	return nil
}
