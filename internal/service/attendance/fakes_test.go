package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/redis"
)

type fakeEventRepo struct {
	mu       sync.Mutex
	lockMu   sync.Mutex
	events   []attendance.Event
	seq      int
	appendFn func(e attendance.Event) error
}

func (r *fakeEventRepo) ListBySubjects(ctx context.Context, subjectIDs []string, from, to time.Time) ([]attendance.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		wanted[id] = true
	}
	var out []attendance.Event
	for _, e := range r.events {
		if wanted[e.SubjectID] && !e.CalendarDay.Before(from) && !e.CalendarDay.After(to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *fakeEventRepo) ListBySector(ctx context.Context, sectorID string, from, to time.Time) ([]attendance.Event, error) {
	return nil, fmt.Errorf("not used")
}

func (r *fakeEventRepo) Append(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	if r.appendFn != nil {
		if err := r.appendFn(e); err != nil {
			return attendance.Event{}, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.events {
		if existing.SubjectID != e.SubjectID || !existing.CalendarDay.Equal(e.CalendarDay) {
			continue
		}
		if existing.Kind == e.Kind || (existing.Kind.IsException() && e.Kind.IsException()) {
			return attendance.Event{}, fmt.Errorf("append: %w", attendance.ErrEventConflict)
		}
	}
	r.seq++
	e.ID = fmt.Sprintf("ev-%d", r.seq)
	e.CreatedAt = e.Timestamp
	r.events = append(r.events, e)
	return e, nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, subjectID string, day time.Time, kind attendance.Kind) (attendance.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.SubjectID == subjectID && e.CalendarDay.Equal(day) && e.Kind == kind {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return e, nil
		}
	}
	return attendance.Event{}, attendance.ErrEventNotFound
}

func (r *fakeEventRepo) WithSubjectLock(ctx context.Context, subjectID string, fn func(ctx context.Context) error) error {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()
	return fn(ctx)
}

func (r *fakeEventRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
}

func newFakeWorkerRepo(ws ...worker.Worker) *fakeWorkerRepo {
	r := &fakeWorkerRepo{workers: make(map[string]worker.Worker)}
	for _, w := range ws {
		r.workers[w.SubjectID] = w
	}
	return r
}

func (r *fakeWorkerRepo) GetBySubjectID(ctx context.Context, subjectID string) (worker.Worker, error) {
	w, ok := r.workers[subjectID]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (r *fakeWorkerRepo) ListBySector(ctx context.Context, sectorID string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range r.workers {
		if w.SectorID == sectorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkerRepo) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, error) {
	return nil, nil
}

func (r *fakeWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	return w, nil
}

func (r *fakeWorkerRepo) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	return w, nil
}

type fakeSectorRepo struct {
	sectors map[string]sector.Sector
}

func (r *fakeSectorRepo) GetByID(ctx context.Context, id string) (sector.Sector, error) {
	s, ok := r.sectors[id]
	if !ok {
		return sector.Sector{}, sector.ErrSectorNotFound
	}
	return s, nil
}

func (r *fakeSectorRepo) List(ctx context.Context) ([]sector.Sector, error) { return nil, nil }

func (r *fakeSectorRepo) Create(ctx context.Context, s sector.Sector) (sector.Sector, error) {
	return s, nil
}

func (r *fakeSectorRepo) Update(ctx context.Context, s sector.Sector) (sector.Sector, error) {
	return s, nil
}

func (r *fakeSectorRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeFileService struct {
	mu      sync.Mutex
	files   map[string][]byte
	seq     int
	deleted []string
}

func newFakeFileService() *fakeFileService {
	return &fakeFileService{files: make(map[string][]byte)}
}

func (f *fakeFileService) put(prefix string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	ref := fmt.Sprintf("%s-%d", prefix, f.seq)
	f.files[ref] = data
	return ref, nil
}

func (f *fakeFileService) UploadPunchEvidence(ctx context.Context, subjectID string, day time.Time, kind string, file io.Reader, filename string) (string, error) {
	return f.put("punches/"+day.Format("2006-01-02")+"/"+subjectID+"-"+kind, file)
}

func (f *fakeFileService) UploadExceptionAttachment(ctx context.Context, subjectID string, day time.Time, file io.Reader, filename string) (string, error) {
	return f.put("exceptions/"+subjectID, file)
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://files.local/" + path, nil
}

func (f *fakeFileService) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

type fakeLocker struct {
	mu     sync.Mutex
	held   map[string]bool
	forced map[string]bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool), forced: make(map[string]bool)}
}

func (l *fakeLocker) AcquirePunchLock(ctx context.Context, subjectID string) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[subjectID] || l.forced[subjectID] {
		return nil, redis.ErrLocked
	}
	l.held[subjectID] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, subjectID)
		return nil
	}, nil
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func photo() (multipart.File, *multipart.FileHeader) {
	data := []byte("\xff\xd8\xff\xe0fake-jpeg")
	return memFile{bytes.NewReader(data)}, &multipart.FileHeader{Filename: "capture.jpg", Size: int64(len(data))}
}
