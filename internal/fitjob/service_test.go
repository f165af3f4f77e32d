package fitjob_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"reflectometry/internal/config"
	"reflectometry/internal/fitjob"
	"reflectometry/pkg/calculator"
	"reflectometry/pkg/description"
	"reflectometry/pkg/domain"
	"reflectometry/pkg/logger"
	"reflectometry/pkg/model"
	"reflectometry/pkg/serrors"
	"reflectometry/pkg/storage"
	mockstorage "reflectometry/pkg/storage/mock"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const modelDoc = `name: film
materials:
  - {name: air, sld: {value: 0}, isld: {value: 0}}
  - {name: si, sld: {value: 2.07}, isld: {value: 0}}
  - {name: sio2, sld: {value: 3.47}, isld: {value: 0}}
sample:
  superphase: air
  subphase: si
  subphase_roughness: {value: 3}
  items:
    - layer: {name: oxide, material: sio2, thickness: {value: 100}, roughness: {value: 3}}
scale: {value: 1}
background: {value: 0}
`

func TestMain(m *testing.M) {
	_ = logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// projectDoc returns a project fitting the scale of modelDoc against data
// calculated with a scale of 1.2. With free false the scale stays fixed.
func projectDoc(t *testing.T, free bool) []byte {
	t.Helper()

	m, err := description.DecodeModel([]byte(modelDoc))
	require.NoError(t, err)
	calc, err := calculator.NewFromBackend(calculator.BackendAbeles)
	require.NoError(t, err)

	q := make([]float64, 30)
	for i := range q {
		q[i] = 0.01 + 0.004*float64(i)
	}
	require.NoError(t, m.Scale().Set(1.2))
	r, err := calc.Calculate(context.Background(), m, q)
	require.NoError(t, err)
	e := make([]float64, len(r))
	for i := range r {
		e[i] = 0.05 * r[i]
	}
	ds, err := model.NewDataset(q, r, e, nil)
	require.NoError(t, err)
	require.NoError(t, m.BindData(ds))

	require.NoError(t, m.Scale().Set(1))
	m.Scale().SetFixed(!free)

	doc, err := description.EncodeProject(&description.FitProject{Name: "oxide", Models: []*model.Model{m}})
	require.NoError(t, err)

	return doc
}

func newTestService(t *testing.T) (*gomock.Controller, *mockstorage.MockStorage, fitjob.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	s := fitjob.New(st, fitjob.Options{MaxAttempts: 3, Timeout: time.Minute})

	return ctrl, st, s
}

// helper to wire Storage.WithTx to execute callback with a MockAllStorage.
func expectWithTx(
	t *testing.T,
	ctrl *gomock.Controller,
	m *mockstorage.MockStorage,
	fn func(tx *mockstorage.MockAllStorage)) {
	t.Helper()

	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func TestService_Calculate(t *testing.T) {
	_, _, s := newTestService(t)

	curve, err := s.Calculate(context.Background(), []byte(modelDoc), []float64{0.01, 0.05, 0.1}, "parratt")
	require.NoError(t, err)
	require.Equal(t, "film", curve.Model)
	require.Len(t, curve.R, 3)
	require.Greater(t, curve.R[0], curve.R[2])
}

func TestService_Calculate_UsesDataPoints(t *testing.T) {
	_, _, s := newTestService(t)

	p, err := description.DecodeProject(projectDoc(t, true))
	require.NoError(t, err)
	doc, err := description.EncodeModel(p.Models[0])
	require.NoError(t, err)

	curve, err := s.Calculate(context.Background(), doc, nil, "")
	require.NoError(t, err)
	require.Len(t, curve.Q, 30)
	require.Len(t, curve.R, 30)
}

func TestService_Calculate_Errors(t *testing.T) {
	_, _, s := newTestService(t)
	ctx := context.Background()

	_, err := s.Calculate(ctx, []byte(modelDoc), nil, "")
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = s.Calculate(ctx, []byte(modelDoc), []float64{0.01}, "nope")
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = s.Calculate(ctx, []byte("name: ["), []float64{0.01}, "")
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func TestService_Enqueue(t *testing.T) {
	ctrl, st, s := newTestService(t)
	doc := projectDoc(t, true)
	id := uuid.New()
	userID := domain.UserID(uuid.New())

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreFits(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fits ...domain.Fit) ([]domain.Fit, error) {
				require.Len(t, fits, 1)
				require.Equal(t, userID, fits[0].UserID)
				require.Equal(t, "oxide", fits[0].Name)
				require.Equal(t, "abeles", fits[0].Backend)
				require.Equal(t, string(doc), fits[0].Project)
				fits[0].ID = domain.FitID(id)

				return fits, nil
			},
		)
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
			func(_ context.Context, args river.JobArgs, _ *river.InsertOpts) (bool, error) {
				job, ok := args.(fitjob.JobArgs)
				require.True(t, ok)
				require.Equal(t, id, job.FitID)
				require.Equal(t, 3, job.InsertOpts().MaxAttempts)

				return true, nil
			},
		)
	})

	fit, err := s.Enqueue(context.Background(), userID, doc)
	require.NoError(t, err)
	require.Equal(t, domain.FitStatusPending, fit.Status)
	require.Equal(t, domain.FitID(id), fit.ID)
}

func TestService_Enqueue_Rejected(t *testing.T) {
	_, _, s := newTestService(t)
	ctx := context.Background()

	_, err := s.Enqueue(ctx, domain.UserID{}, []byte("models: 3"))
	require.ErrorIs(t, err, serrors.ErrValidation)

	_, err = s.Enqueue(ctx, domain.UserID{}, projectDoc(t, false))
	require.ErrorIs(t, err, serrors.ErrConfiguration)

	noData := "name: p\nmodels:\n" + indent(modelDoc)
	_, err = s.Enqueue(ctx, domain.UserID{}, []byte(noData))
	require.ErrorIs(t, err, serrors.ErrConfiguration)
}

func TestService_Enqueue_PropagatesErrors(t *testing.T) {
	ctrl, st, s := newTestService(t)
	boom := errors.New("boom")

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreFits(gomock.Any(), gomock.Any()).Return(nil, boom)
	})

	_, err := s.Enqueue(context.Background(), domain.UserID{}, projectDoc(t, true))
	require.ErrorIs(t, err, boom)
}

func TestService_UserFits(t *testing.T) {
	_, st, s := newTestService(t)
	userID := domain.UserID(uuid.New())
	cursorTime := time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)
	cursorID := uuid.New()
	nextID := uuid.New()
	next := storage.Cursor{CreatedAt: cursorTime, ID: domain.FitID(nextID)}

	st.EXPECT().UserFits(gomock.Any(), userID, domain.FitStatusCompleted, gomock.Any(), uint(fitjob.DefaultLimit)).
		DoAndReturn(func(_ context.Context,
			_ domain.UserID,
			_ domain.FitStatus,
			c storage.Cursor,
			_ uint) (storage.UserFits, error) {
			require.True(t, cursorTime.Equal(c.CreatedAt))
			require.Equal(t, domain.FitID(cursorID), c.ID)

			return storage.UserFits{Fits: []domain.Fit{{Name: "a"}}, NextCursor: &next}, nil
		})

	fits, nextCursor, err := s.UserFits(context.Background(), userID, domain.FitStatusCompleted,
		cursorTime.Format(time.RFC3339Nano)+"_"+cursorID.String(), 0)
	require.NoError(t, err)
	require.Len(t, fits, 1)
	// fits created in the same instant stay apart through the id
	require.Equal(t, "2026-01-02T03:04:05.0000006Z_"+nextID.String(), nextCursor)

	st.EXPECT().UserFits(gomock.Any(), userID, domain.FitStatus(""), storage.Cursor{}, uint(fitjob.MaxLimit)).
		Return(storage.UserFits{}, nil)
	_, nextCursor, err = s.UserFits(context.Background(), userID, "", "", 1000)
	require.NoError(t, err)
	require.Empty(t, nextCursor)
}

func TestService_UserFits_BadRequest(t *testing.T) {
	_, _, s := newTestService(t)

	_, _, err := s.UserFits(context.Background(), domain.UserID{}, "", "yesterday", 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	// a bare timestamp cannot break ties between fits created together
	_, _, err = s.UserFits(context.Background(), domain.UserID{}, "", "2026-01-02T03:04:05Z", 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, _, err = s.UserFits(context.Background(), domain.UserID{}, "", "2026-01-02T03:04:05Z_nope", 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, _, err = s.UserFits(context.Background(), domain.UserID{}, "RUNNING", "", 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestService_ResultAndDelete(t *testing.T) {
	_, st, s := newTestService(t)
	ctx := context.Background()
	userID := domain.UserID(uuid.New())
	id := domain.FitID(uuid.New())

	st.EXPECT().FitByID(gomock.Any(), userID, id).Return(&domain.Fit{ID: id}, nil)
	fit, err := s.Result(ctx, userID, id)
	require.NoError(t, err)
	require.Equal(t, id, fit.ID)

	st.EXPECT().FitByID(gomock.Any(), userID, id).Return(nil, nil)
	_, err = s.Result(ctx, userID, id)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	st.EXPECT().DeleteFit(gomock.Any(), userID, id).Return(&domain.Fit{ID: id}, nil)
	require.NoError(t, s.Delete(ctx, userID, id))

	st.EXPECT().DeleteFit(gomock.Any(), userID, id).Return(nil, nil)
	require.ErrorIs(t, s.Delete(ctx, userID, id), serrors.ErrNotFound)
}

func TestService_Run(t *testing.T) {
	_, st, s := newTestService(t)
	id := domain.FitID(uuid.New())
	doc := projectDoc(t, true)

	st.EXPECT().PendingFitByID(gomock.Any(), id).
		Return(&domain.Fit{ID: id, Project: string(doc), Backend: "parratt", Status: domain.FitStatusPending}, nil)
	st.EXPECT().UpdatePendingFitByID(gomock.Any(), id, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.FitID, updates storage.FitUpdates) (*domain.Fit, error) {
			require.Equal(t, domain.FitStatusCompleted, updates.Status)
			require.NotNil(t, updates.LastError)
			require.Empty(t, *updates.LastError)
			require.NotNil(t, updates.Result)

			res := updates.Result
			require.Len(t, res.Parameters, 1)
			require.Equal(t, "film.scale", res.Parameters[0].Name)
			require.InDelta(t, 1.2, res.Parameters[0].Value, 1e-4)
			require.Len(t, res.Curves, 1)
			require.Len(t, res.Curves[0].R, 30)

			fitted, err := description.DecodeProject([]byte(res.Project))
			require.NoError(t, err)
			require.InDelta(t, 1.2, fitted.Models[0].Scale().Value(), 1e-4)

			return &domain.Fit{ID: id, Status: updates.Status, Result: *res}, nil
		},
	)

	require.NoError(t, s.Run(context.Background(), id))
}

func TestService_Run_NotPending(t *testing.T) {
	_, st, s := newTestService(t)
	id := domain.FitID(uuid.New())

	st.EXPECT().PendingFitByID(gomock.Any(), id).Return(nil, nil)

	err := s.Run(context.Background(), id)
	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.True(t, fitjob.Permanent(err))
}

func TestService_Run_PermanentFailure(t *testing.T) {
	_, st, s := newTestService(t)
	id := domain.FitID(uuid.New())
	cyclic := strings.Replace(string(projectDoc(t, true)), "models:", `constraints:
  - {target: film/film.scale, expression: b, vars: {b: film/film.background}}
  - {target: film/film.background, expression: s, vars: {s: film/film.scale}}
models:`, 1)

	st.EXPECT().PendingFitByID(gomock.Any(), id).Return(&domain.Fit{ID: id, Project: cyclic}, nil)
	st.EXPECT().UpdatePendingFitByID(gomock.Any(), id, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.FitID, updates storage.FitUpdates) (*domain.Fit, error) {
			require.Equal(t, domain.FitStatusFailed, updates.Status)
			require.Zero(t, updates.MaxAttempts)
			require.NotEmpty(t, *updates.LastError)

			return &domain.Fit{ID: id, Status: domain.FitStatusFailed}, nil
		},
	)

	err := s.Run(context.Background(), id)
	require.ErrorIs(t, err, serrors.ErrConstraintCycle)
	require.True(t, fitjob.Permanent(err))
}

func TestService_Run_TransientFailure(t *testing.T) {
	_, st, s := newTestService(t)
	id := domain.FitID(uuid.New())
	boom := errors.New("connection reset")

	st.EXPECT().PendingFitByID(gomock.Any(), id).Return(nil, boom)

	err := s.Run(context.Background(), id)
	require.ErrorIs(t, err, boom)
	require.False(t, fitjob.Permanent(err))
}

func TestFit(t *testing.T) {
	res, err := fitjob.Fit(context.Background(), projectDoc(t, true), fitjob.Options{Backend: calculator.BackendParratt})
	require.NoError(t, err)
	require.Len(t, res.Parameters, 1)
	require.InDelta(t, 1.2, res.Parameters[0].Value, 1e-4)
	require.NotNil(t, res.Parameters[0].Min)
	require.Nil(t, res.Parameters[0].Max)
	require.Less(t, res.Chi2, 1e-6)

	_, err = fitjob.Fit(context.Background(), projectDoc(t, false), fitjob.Options{})
	require.ErrorIs(t, err, serrors.ErrConfiguration)
}

func TestNewOptions(t *testing.T) {
	cfg := configWith(t, "parratt", "engine")

	opts, err := fitjob.NewOptions(cfg)
	require.NoError(t, err)
	require.Equal(t, calculator.BackendParratt, opts.Backend)
	require.Equal(t, calculator.SmearEngine, opts.Smearing)
	require.Equal(t, 3, opts.MaxAttempts)

	_, err = fitjob.NewOptions(configWith(t, "fresnel", ""))
	require.ErrorIs(t, err, serrors.ErrConfiguration)
}

func configWith(t *testing.T, engine, smearing string) *config.Config {
	t.Helper()

	cfg, err := config.Defaults()
	require.NoError(t, err)
	cfg.Calculator.Engine = engine
	cfg.Calculator.Smearing = smearing

	return cfg
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		prefix := "    "
		if i == 0 {
			prefix = "  - "
		}
		lines[i] = prefix + l
	}

	return strings.Join(lines, "\n") + "\n"
}
