// Package session keeps editing sessions in memory. A session's segment list is never
// modified in place: every mutation installs a new slice and bumps the version, so a
// Session returned to a caller is an immutable snapshot.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"storykura/internal/types"
	apperrors "storykura/pkg/errors"
)

// Kind is the type of per-segment work a ticket tracks.
type Kind string

const (
	KindAudio Kind = "audio"
	KindMedia Kind = "media"
)

var ErrStale = apperrors.ErrStaleOperation

type Session struct {
	Id        string                `json:"id"`
	Version   int64                 `json:"version"`
	Mode      types.MediaMode       `json:"mode"`
	Voice     types.VoiceOptions    `json:"voice"`
	Segments  []types.ScriptSegment `json:"segments"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Segment returns the segment with the given id.
func (s Session) Segment(segmentId string) (types.ScriptSegment, bool) {
	return lo.Find(s.Segments, func(seg types.ScriptSegment) bool {
		return seg.Id == segmentId
	})
}

// Ticket identifies one in-flight operation on a segment.
type Ticket struct {
	SessionId string
	SegmentId string
	Kind      Kind
	seq       uint64
}

type flightKey struct {
	sessionId string
	segmentId string
	kind      Kind
}

type flight struct {
	seq    uint64
	cancel context.CancelFunc
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    []string
	inflight map[flightKey]flight
	seq      uint64
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		inflight: make(map[flightKey]flight),
		now:      time.Now,
	}
}

// Create stores a new session built from segments in narrative order.
func (s *Store) Create(mode types.MediaMode, voice types.VoiceOptions, segments []types.Segment) Session {
	now := s.now()
	sess := &Session{
		Id:      uuid.New().String(),
		Version: 1,
		Mode:    mode,
		Voice:   voice,
		Segments: lo.Map(segments, func(seg types.Segment, _ int) types.ScriptSegment {
			return types.ScriptSegment{
				Segment: seg,
				Id:      uuid.New().String(),
				Status:  types.SegmentStatusCompleted,
			}
		}),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Id] = sess
	s.order = append(s.order, sess.Id)
	return *sess
}

func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, sessionNotFound(id)
	}
	return *sess, nil
}

// List returns all sessions, oldest first.
func (s *Store) List() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(s.order, func(id string, _ int) Session {
		return *s.sessions[id]
	})
}

// Delete removes a session and cancels its in-flight operations.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return sessionNotFound(id)
	}
	delete(s.sessions, id)
	s.order = lo.Without(s.order, id)
	for key, f := range s.inflight {
		if key.sessionId == id {
			f.cancel()
			delete(s.inflight, key)
		}
	}
	return nil
}

// Update replaces the whole segment list with the result of fn. fn receives a copy.
func (s *Store) Update(id string, fn func(segments []types.ScriptSegment) ([]types.ScriptSegment, error)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, sessionNotFound(id)
	}
	next, err := fn(append([]types.ScriptSegment(nil), sess.Segments...))
	if err != nil {
		return Session{}, err
	}
	return s.commitLocked(sess, next), nil
}

// SetMode switches between video search and lecture slides for later media requests.
func (s *Store) SetMode(id string, mode types.MediaMode) (Session, error) {
	if !mode.Valid() {
		return Session{}, apperrors.WrapWithDetail(apperrors.CodeInvalidParams, "不支持的模式 Unsupported mode", string(mode), nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, sessionNotFound(id)
	}
	next := *sess
	next.Mode = mode
	return s.commitLocked(&next, sess.Segments), nil
}

// EditLecture replaces the lecture text of one segment. Existing audio is kept; the
// editor decides when to regenerate it.
func (s *Store) EditLecture(id, segmentId, lectureText string) (Session, error) {
	return s.updateSegment(id, segmentId, func(seg *types.ScriptSegment) {
		seg.LectureText = lectureText
	})
}

// Begin registers an operation of kind on a segment. A previous operation of the same kind
// on the same segment is cancelled and its later Complete or Fail will return ErrStale.
func (s *Store) Begin(ctx context.Context, sessionId, segmentId string, kind Kind) (Ticket, context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionId]
	if !ok {
		return Ticket{}, nil, sessionNotFound(sessionId)
	}
	next, err := replaceSegment(sess.Segments, segmentId, func(seg *types.ScriptSegment) {
		setKindStatus(seg, kind, types.SegmentStatusProcessing, "")
	})
	if err != nil {
		return Ticket{}, nil, err
	}

	key := flightKey{sessionId: sessionId, segmentId: segmentId, kind: kind}
	if prev, ok := s.inflight[key]; ok {
		prev.cancel()
	}
	s.seq++
	opCtx, cancel := context.WithCancel(ctx)
	s.inflight[key] = flight{seq: s.seq, cancel: cancel}
	s.commitLocked(sess, next)

	return Ticket{SessionId: sessionId, SegmentId: segmentId, Kind: kind, seq: s.seq}, opCtx, nil
}

// Complete applies the result of a ticket's operation unless a newer ticket superseded it.
func (s *Store) Complete(t Ticket, apply func(seg *types.ScriptSegment)) (Session, error) {
	return s.finish(t, func(seg *types.ScriptSegment) {
		apply(seg)
		setKindStatus(seg, t.Kind, types.SegmentStatusCompleted, "")
	})
}

// Fail records err on the ticket's segment unless a newer ticket superseded it.
func (s *Store) Fail(t Ticket, err error) (Session, error) {
	message := apperrors.GetMessage(err)
	if detail := apperrors.GetDetail(err); detail != "" {
		message += ": " + detail
	}
	return s.finish(t, func(seg *types.ScriptSegment) {
		setKindStatus(seg, t.Kind, types.SegmentStatusError, message)
	})
}

func (s *Store) finish(t Ticket, fn func(seg *types.ScriptSegment)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := flightKey{sessionId: t.SessionId, segmentId: t.SegmentId, kind: t.Kind}
	f, ok := s.inflight[key]
	if !ok || f.seq != t.seq {
		return Session{}, ErrStale
	}
	delete(s.inflight, key)
	f.cancel()

	sess, ok := s.sessions[t.SessionId]
	if !ok {
		return Session{}, sessionNotFound(t.SessionId)
	}
	next, err := replaceSegment(sess.Segments, t.SegmentId, fn)
	if err != nil {
		return Session{}, err
	}
	return s.commitLocked(sess, next), nil
}

func (s *Store) updateSegment(id, segmentId string, fn func(seg *types.ScriptSegment)) (Session, error) {
	return s.Update(id, func(segments []types.ScriptSegment) ([]types.ScriptSegment, error) {
		return replaceSegment(segments, segmentId, fn)
	})
}

// commitLocked installs segments as the new list of sess. Callers hold s.mu.
func (s *Store) commitLocked(sess *Session, segments []types.ScriptSegment) Session {
	next := *sess
	next.Segments = segments
	next.Version = sess.Version + 1
	next.UpdatedAt = s.now()
	s.sessions[next.Id] = &next
	return next
}

// replaceSegment returns a copy of segments with fn applied to the matching segment.
func replaceSegment(segments []types.ScriptSegment, segmentId string, fn func(seg *types.ScriptSegment)) ([]types.ScriptSegment, error) {
	_, idx, ok := lo.FindIndexOf(segments, func(seg types.ScriptSegment) bool {
		return seg.Id == segmentId
	})
	if !ok {
		return nil, apperrors.WrapWithDetail(apperrors.CodeNotFound, "片段不存在 Segment not found", segmentId, nil)
	}
	next := append([]types.ScriptSegment(nil), segments...)
	fn(&next[idx])
	return next, nil
}

// setKindStatus records the outcome of one kind and recomputes the segment summary:
// processing while any kind runs, then error if any kind failed, else completed.
func setKindStatus(seg *types.ScriptSegment, kind Kind, status types.SegmentStatus, message string) {
	switch kind {
	case KindAudio:
		seg.AudioStatus, seg.AudioError = status, message
	case KindMedia:
		seg.MediaStatus, seg.MediaError = status, message
	}

	statuses := []types.SegmentStatus{seg.AudioStatus, seg.MediaStatus}
	switch {
	case lo.Contains(statuses, types.SegmentStatusProcessing):
		seg.Status = types.SegmentStatusProcessing
	case lo.Contains(statuses, types.SegmentStatusError):
		seg.Status = types.SegmentStatusError
	default:
		seg.Status = types.SegmentStatusCompleted
	}
	seg.Error = strings.Join(lo.Compact([]string{seg.AudioError, seg.MediaError}), "; ")
}

func sessionNotFound(id string) error {
	return apperrors.WrapWithDetail(apperrors.CodeNotFound, "会话不存在 Session not found", id, nil)
}
