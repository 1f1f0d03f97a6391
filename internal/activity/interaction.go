package activity

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"tokdrift/internal/account"
	"tokdrift/internal/config"
	"tokdrift/internal/humanize"
	"tokdrift/internal/report"
)

var videoIDPattern = regexp.MustCompile(`/video/(\d+)`)

// ExtractVideoID pulls the numeric video id out of a share URL of the form
// .../video/<digits>. The second return is false when no id is present.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// resolveVideoID prefers an explicit id over a URL to parse.
func resolveVideoID(videoID, videoURL string) (string, error) {
	if videoID != "" {
		return videoID, nil
	}
	if id, ok := ExtractVideoID(videoURL); ok {
		return id, nil
	}
	return "", &ValidationError{Field: "videoId", Reason: "no video id and no parseable video url"}
}

// MassComment posts one comment per session on a single target video.
// Comments are reused cyclically when there are fewer than sessions, after
// an optional shuffle. One session's failure becomes a failed result;
// the loop and its inter-session delays continue regardless.
//
// The returned error is non-nil only for call-level failures (an
// unresolvable target, external termination); the per-session results
// gathered so far are always returned.
func MassComment(ctx context.Context, sessions []*account.Session, cfg config.CommentingConfig, deps Deps) ([]report.Result, error) {
	videoID, err := resolveVideoID(cfg.VideoID, cfg.VideoURL)
	if err != nil {
		return nil, err
	}
	if len(cfg.Comments) == 0 {
		return nil, &ValidationError{Field: "comments", Reason: "empty"}
	}

	comments := cfg.Comments
	if cfg.RandomizeOrder {
		comments = humanize.Shuffle(deps.Engine, comments)
	}

	log := deps.logger().With(zap.String("phase", "mass_comment"), zap.String("video", videoID))

	results := make([]report.Result, 0, len(sessions))
	for i, s := range sessions {
		results = append(results, commentOnce(ctx, s, videoID, comments[i%len(comments)], deps, log))

		if i < len(sessions)-1 {
			delay := deps.Engine.Delay(cfg.DelayBetweenMin, cfg.DelayBetweenMax)
			if err := deps.Sleeper.Sleep(ctx, delay); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

func commentOnce(ctx context.Context, s *account.Session, videoID, text string, deps Deps, log *zap.Logger) report.Result {
	fac := deps.Facade(s)
	d, err := fac.BuildComment(videoID, text)
	if err != nil {
		log.Warn("comment failed", zap.String("username", s.Username()), zap.Error(err))
		return report.Failed(s.Username(), err)
	}
	if _, err := fac.Execute(ctx, d); err != nil {
		log.Warn("comment failed", zap.String("username", s.Username()), zap.Error(err))
		return report.Failed(s.Username(), err)
	}
	return report.Succeeded(s.Username(), "commented")
}

// MassLikeComment likes one fixed comment from every session, with the same
// per-session containment and pacing as MassComment.
func MassLikeComment(ctx context.Context, sessions []*account.Session, cfg config.CommentLikingConfig, deps Deps) ([]report.Result, error) {
	if cfg.CommentID == "" {
		return nil, &ValidationError{Field: "commentId", Reason: "missing"}
	}
	// The video id is optional context for the like; a bad URL without an
	// explicit id is still fatal, matching comment targeting.
	videoID := cfg.VideoID
	if videoID == "" && cfg.VideoURL != "" {
		id, ok := ExtractVideoID(cfg.VideoURL)
		if !ok {
			return nil, &ValidationError{Field: "videoId", Reason: "unparseable video url"}
		}
		videoID = id
	}

	log := deps.logger().With(zap.String("phase", "mass_comment_like"), zap.String("comment", cfg.CommentID))

	results := make([]report.Result, 0, len(sessions))
	for i, s := range sessions {
		results = append(results, likeCommentOnce(ctx, s, videoID, cfg.CommentID, deps, log))

		if i < len(sessions)-1 {
			delay := deps.Engine.Delay(cfg.DelayBetweenMin, cfg.DelayBetweenMax)
			if err := deps.Sleeper.Sleep(ctx, delay); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

func likeCommentOnce(ctx context.Context, s *account.Session, videoID, commentID string, deps Deps, log *zap.Logger) report.Result {
	fac := deps.Facade(s)
	d, err := fac.BuildLikeComment(videoID, commentID)
	if err != nil {
		log.Warn("comment like failed", zap.String("username", s.Username()), zap.Error(err))
		return report.Failed(s.Username(), err)
	}
	if _, err := fac.Execute(ctx, d); err != nil {
		log.Warn("comment like failed", zap.String("username", s.Username()), zap.Error(err))
		return report.Failed(s.Username(), err)
	}
	return report.Succeeded(s.Username(), "liked comment")
}
