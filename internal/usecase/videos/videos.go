package videos

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"trophyseeker/internal/domain/catalog"
	"trophyseeker/internal/domain/video"
	errs "trophyseeker/internal/errors"
)

// FilterAll disables the game filter in List.
const FilterAll = "all"

var youtubeURL = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/(watch\?v=|embed/|v/|)([\w-]{11})(.*)?$`)

type SubmissionStore interface {
	LoadVideoSubmissions(ctx context.Context, username string) ([]video.Submission, error)
	SaveVideoSubmissions(ctx context.Context, username string, submissions []video.Submission) error
}

type Locker interface {
	Lock(username string) func()
}

type VideosUsecase struct {
	store  SubmissionStore
	locker Locker
	now    func() time.Time
}

func NewVideosUsecase(store SubmissionStore, locker Locker, now func() time.Time) *VideosUsecase {
	return &VideosUsecase{store: store, locker: locker, now: now}
}

// List returns community videos newest first, optionally limited to one game.
func (v *VideosUsecase) List(gameFilter string) []video.Video {
	all := catalog.Videos(v.now())
	gameFilter = strings.TrimSpace(gameFilter)
	out := make([]video.Video, 0, len(all))
	for _, item := range all {
		if gameFilter == "" || gameFilter == FilterAll || item.GameID == gameFilter {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

// VideoID extracts the 11-character id from a YouTube watch, embed or short link.
func VideoID(link string) (string, bool) {
	m := youtubeURL.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[5], true
}

func (v *VideosUsecase) Submit(ctx context.Context, username, link string) (video.Submission, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return video.Submission{}, errs.ErrEmptyVideoLink
	}
	id, ok := VideoID(link)
	if !ok {
		return video.Submission{}, errs.ErrInvalidVideoLink
	}

	unlock := v.locker.Lock(username)
	defer unlock()

	submissions, err := v.store.LoadVideoSubmissions(ctx, username)
	if err != nil {
		return video.Submission{}, err
	}
	created := video.Submission{
		ID:        uuid.NewString(),
		URL:       link,
		VideoID:   id,
		Status:    video.StatusPendingReview,
		Timestamp: v.now().UnixMilli(),
	}
	if err := v.store.SaveVideoSubmissions(ctx, username, append([]video.Submission{created}, submissions...)); err != nil {
		return video.Submission{}, err
	}
	return created, nil
}

func (v *VideosUsecase) Submissions(ctx context.Context, username string) ([]video.Submission, error) {
	submissions, err := v.store.LoadVideoSubmissions(ctx, username)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []video.Submission{}
	}
	return submissions, nil
}
