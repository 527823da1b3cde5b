package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/transfer"
)

// Completer is the single LLM call the writer depends on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type WriterService interface {
	Generate(ctx context.Context, userID int64, req *transfer.GenerateRequest) (*transfer.GenerateResponse, error)
}

type writerService struct {
	db *sql.DB
	tr repository.TweetRepository
	c  Completer
}

func NewWriterService(db *sql.DB, tr repository.TweetRepository, completer Completer) WriterService {
	return &writerService{
		db: db,
		tr: tr,
		c:  completer,
	}
}

const maxGeneratedTweets = 5

// minTweetLength filters out leftover list markers and fragments.
const minTweetLength = 10

var (
	numberedLineRe   = regexp.MustCompile(`^\d+\.\s*(.+)$`)
	leadingNumberRe  = regexp.MustCompile(`^\d+\.\s*`)
	boldCategoryRe   = regexp.MustCompile(`\*\*\[.*?\]\*\*`)
	boldRe           = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe         = regexp.MustCompile(`\*(.*?)\*`)
	leadingBracketRe = regexp.MustCompile(`^\[.*?\]\s*`)
)

func (s *writerService) Generate(ctx context.Context, userID int64, req *transfer.GenerateRequest) (*transfer.GenerateResponse, error) {
	if req == nil || req.ProductName == "" || req.Description == "" {
		slog.Info("generate request missing product name or description")
		return nil, fmt.Errorf("%w: product name and description are required", ErrInvalidInput)
	}

	prompt := buildPrompt(req)

	content, err := s.c.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	tweets := parseTweets(content)
	if len(tweets) < 3 {
		if fallback := fallbackParseTweets(content); len(fallback) > len(tweets) {
			tweets = fallback
		}
	}
	if len(tweets) == 0 {
		return nil, fmt.Errorf("failed to parse generated tweets")
	}

	for i, tweet := range tweets {
		if runes := []rune(tweet); len(runes) > models.MaxTweetLength {
			tweets[i] = string(runes[:models.MaxTweetLength])
		}
	}

	stored, err := s.storeTweets(ctx, userID, req.ProductName, tweets)
	if err != nil {
		return nil, err
	}

	return &transfer.GenerateResponse{
		Tweets: tweets,
		Stored: stored,
	}, nil
}

func (s *writerService) storeTweets(ctx context.Context, userID int64, productName string, tweets []string) ([]transfer.TweetInfo, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stored := make([]transfer.TweetInfo, 0, len(tweets))
	for _, content := range tweets {
		tweet := models.Tweet{
			UserID:      userID,
			Content:     content,
			Status:      models.TweetStatusGenerated,
			ProductName: productName,
		}

		var id string
		id, err = s.tr.Create(ctx, tx, &tweet)
		if err != nil {
			return nil, fmt.Errorf("error storing tweet: %w", err)
		}

		stored = append(stored, transfer.TweetInfo{
			ID:          id,
			Content:     content,
			Status:      models.TweetStatusGenerated,
			ProductName: productName,
		})
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return stored, nil
}

// buildPrompt renders the build-in-public instruction string from the
// product setup. One template serves every generation entry point.
func buildPrompt(req *transfer.GenerateRequest) string {
	tone := strings.TrimSpace(req.CustomTone)
	if tone == "" {
		tone = req.TonePreference
	}
	if tone == "" {
		tone = "friendly"
	}

	audience := splitAudience(req.TargetAudience)

	features := "innovative features"
	if len(req.KeyFeatures) > 0 {
		features = strings.Join(req.KeyFeatures, ", ")
	}

	var b strings.Builder
	b.WriteString("# Build-in-Public Tweet Generator\n\n")
	fmt.Fprintf(&b, "You are an indie hacker documenting your journey building **%s** on X (Twitter). ", req.ProductName)
	fmt.Fprintf(&b, "Your audience is %s and you communicate with a %s tone.\n\n", strings.Join(audience, ", "), tone)
	b.WriteString("## PRODUCT CONTEXT\n")
	fmt.Fprintf(&b, "- **Product:** %s\n", req.ProductName)
	fmt.Fprintf(&b, "- **What it does:** %s\n", req.Description)
	fmt.Fprintf(&b, "- **Key features:** %s\n", features)
	fmt.Fprintf(&b, "- **Target users:** %s\n", strings.Join(audience, ", "))
	if req.XHandle != "" {
		fmt.Fprintf(&b, "- **Your handle:** @%s\n", req.XHandle)
	}
	b.WriteString("\n## WRITING RULES\n")
	b.WriteString("- Sound like a real person documenting the journey, not a marketer selling it\n")
	b.WriteString("- Lowercase casual style, raw emotions, specific (fake but realistic) metrics\n")
	b.WriteString("- No corporate speak, no links, no CTAs, no unnecessary hashtags or @mentions\n")
	fmt.Fprintf(&b, "- Reference %s naturally as part of your story\n", req.ProductName)
	b.WriteString("- Keep each tweet under 280 characters\n")
	b.WriteString("- Mix daily progress, milestone moments, honest struggles, hot takes and community questions\n")
	b.WriteString("\n## OUTPUT FORMAT\n")
	b.WriteString("Generate 5 tweets. Return ONLY the tweet content, one per line, numbered like this:\n\n")
	b.WriteString("1. [clean tweet content here]\n")
	b.WriteString("2. [clean tweet content here]\n")
	b.WriteString("3. [clean tweet content here]\n")
	b.WriteString("4. [clean tweet content here]\n")
	b.WriteString("5. [clean tweet content here]\n\n")
	b.WriteString("NO markdown formatting, NO category labels, NO asterisks - just clean tweet text.\n")

	return b.String()
}

func splitAudience(raw string) []string {
	cleaned := strings.NewReplacer(`'`, "", `"`, "").Replace(raw)
	var audience []string
	for _, part := range strings.Split(cleaned, ",") {
		if part = strings.TrimSpace(part); part != "" {
			audience = append(audience, part)
		}
	}
	if len(audience) == 0 {
		audience = []string{"developers"}
	}
	return audience
}

// parseTweets extracts numbered "N. ..." lines and strips residual
// markdown markers.
func parseTweets(content string) []string {
	var tweets []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		match := numberedLineRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		tweet := cleanTweet(match[1])
		if len(tweet) > minTweetLength {
			tweets = append(tweets, tweet)
		}
		if len(tweets) == maxGeneratedTweets {
			break
		}
	}
	return tweets
}

// fallbackParseTweets is the looser pass used when the model ignored the
// numbering instructions.
func fallbackParseTweets(content string) []string {
	var tweets []string
	for _, line := range strings.Split(content, "\n") {
		tweet := cleanTweet(leadingNumberRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if len(tweet) > minTweetLength {
			tweets = append(tweets, tweet)
		}
		if len(tweets) == maxGeneratedTweets {
			break
		}
	}
	return tweets
}

func cleanTweet(raw string) string {
	tweet := strings.TrimSpace(raw)
	tweet = boldCategoryRe.ReplaceAllString(tweet, "")
	tweet = boldRe.ReplaceAllString(tweet, "$1")
	tweet = italicRe.ReplaceAllString(tweet, "$1")
	tweet = leadingBracketRe.ReplaceAllString(tweet, "")
	return strings.TrimSpace(tweet)
}
