package consultations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/app/services/core/patients"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/dto/requests"
	"ptmd-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- fakes ----

type fakeConsultationRepository struct {
	consultations map[string]*models.Consultation
	failCreate    bool
}

func newFakeConsultationRepository() *fakeConsultationRepository {
	return &fakeConsultationRepository{consultations: make(map[string]*models.Consultation)}
}

func (r *fakeConsultationRepository) CreateConsultation(_ context.Context, consultationModel *models.Consultation) (string, error) {
	if r.failCreate {
		return "", exceptions.ErrMongoDBInsertDocument(errors.New("insert failed"))
	}
	stored := *consultationModel
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("consultation-%d", len(r.consultations)+1)
	}
	r.consultations[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeConsultationRepository) FindByID(_ context.Context, consultationID string) (*models.Consultation, error) {
	consultation, ok := r.consultations[consultationID]
	if !ok {
		return nil, nil
	}
	found := *consultation
	return &found, nil
}

func (r *fakeConsultationRepository) FindByIDs(_ context.Context, consultationIDs []string) (map[string]*models.Consultation, error) {
	byID := make(map[string]*models.Consultation)
	for _, consultationID := range consultationIDs {
		if consultation, ok := r.consultations[consultationID]; ok {
			found := *consultation
			byID[consultationID] = &found
		}
	}
	return byID, nil
}

func (r *fakeConsultationRepository) FindConsultations(_ context.Context, medicoID string, patientIDs []string) ([]models.Consultation, error) {
	var result []models.Consultation
	for _, consultation := range r.consultations {
		if medicoID != "" && consultation.MedicoID != medicoID {
			continue
		}
		if patientIDs != nil {
			match := false
			for _, patientID := range patientIDs {
				if consultation.PatientID == patientID {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *consultation)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeConsultationRepository) ConfirmDiagnosis(_ context.Context, consultationID string, diagnosis models.Diagnosis) error {
	consultation, ok := r.consultations[consultationID]
	if !ok {
		return exceptions.ErrConsultationNotExist(errors.New("not found"))
	}
	consultation.FinalDiagnosis = &diagnosis
	consultation.Confirmed = true
	return nil
}

func (r *fakeConsultationRepository) CountConsultations(_ context.Context) (int64, error) {
	return int64(len(r.consultations)), nil
}

type fakeImageRepository struct {
	images []*models.Image
}

func (r *fakeImageRepository) CreateImage(_ context.Context, imageModel *models.Image) (string, error) {
	stored := *imageModel
	stored.ID = fmt.Sprintf("image-%d", len(r.images)+1)
	r.images = append(r.images, &stored)
	return stored.ID, nil
}

func (r *fakeImageRepository) FindByID(_ context.Context, imageID string) (*models.Image, error) {
	for _, image := range r.images {
		if image.ID == imageID {
			found := *image
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeImageRepository) FindByConsultationID(_ context.Context, consultationID string) ([]models.Image, error) {
	var result []models.Image
	for _, image := range r.images {
		if image.ConsultationID == consultationID {
			result = append(result, *image)
		}
	}
	return result, nil
}

func (r *fakeImageRepository) FindByConsultationIDs(_ context.Context, consultationIDs []string) (map[string][]models.Image, error) {
	byConsultation := make(map[string][]models.Image)
	for _, consultationID := range consultationIDs {
		for _, image := range r.images {
			if image.ConsultationID == consultationID {
				byConsultation[consultationID] = append(byConsultation[consultationID], *image)
			}
		}
	}
	return byConsultation, nil
}

func (r *fakeImageRepository) ConfirmDiagnosis(_ context.Context, imageID string, diagnosis models.Diagnosis) error {
	for _, image := range r.images {
		if image.ID == imageID {
			image.FinalDiagnosis = &diagnosis
			image.Confirmed = true
			return nil
		}
	}
	return exceptions.ErrImageNotExist(errors.New("not found"))
}

func (r *fakeImageRepository) FindConfirmedImages(_ context.Context) ([]models.Image, error) {
	var result []models.Image
	for _, image := range r.images {
		if image.Confirmed {
			result = append(result, *image)
		}
	}
	return result, nil
}

func (r *fakeImageRepository) CountImages(_ context.Context) (int64, error) {
	return int64(len(r.images)), nil
}

type fakePatientRepository struct {
	patients map[string]*models.Patient // keyed by CPF
	nextID   int
}

func newFakePatientRepository() *fakePatientRepository {
	return &fakePatientRepository{patients: make(map[string]*models.Patient)}
}

func (r *fakePatientRepository) UpsertByCPF(_ context.Context, patientModel *models.Patient) (*models.Patient, error) {
	if existing, ok := r.patients[patientModel.CPF]; ok {
		if patientModel.Nome != "" {
			existing.Nome = patientModel.Nome
		}
		if patientModel.DataNascimento != nil {
			existing.DataNascimento = patientModel.DataNascimento
		}
		found := *existing
		return &found, nil
	}
	r.nextID++
	stored := *patientModel
	stored.ID = fmt.Sprintf("patient-%d", r.nextID)
	r.patients[stored.CPF] = &stored
	found := stored
	return &found, nil
}

func (r *fakePatientRepository) FindByID(_ context.Context, patientID string) (*models.Patient, error) {
	for _, patient := range r.patients {
		if patient.ID == patientID {
			found := *patient
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepository) FindByIDs(_ context.Context, patientIDs []string) (map[string]*models.Patient, error) {
	byID := make(map[string]*models.Patient)
	for _, patientID := range patientIDs {
		if patient, err := r.FindByID(context.Background(), patientID); err == nil && patient != nil {
			byID[patientID] = patient
		}
	}
	return byID, nil
}

func (r *fakePatientRepository) SearchPatients(_ context.Context, nome, cpf string) ([]models.Patient, error) {
	var result []models.Patient
	for _, patient := range r.patients {
		if nome != "" && !strings.Contains(strings.ToLower(patient.Nome), strings.ToLower(nome)) {
			continue
		}
		if cpf != "" && patient.CPF != cpf {
			continue
		}
		result = append(result, *patient)
	}
	return result, nil
}

func (r *fakePatientRepository) CountPatients(_ context.Context) (int64, error) {
	return int64(len(r.patients)), nil
}

type fakeStorage struct {
	objects      map[string][]byte
	removed      []string
	uploads      int
	failUploadAt int // 1-based upload call that fails; 0 disables
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) UploadObject(_ context.Context, objectName string, content []byte, _ string) error {
	s.uploads++
	if s.failUploadAt != 0 && s.uploads == s.failUploadAt {
		return exceptions.ErrMinioCreateObject(errors.New("upload failed"), "test-bucket")
	}
	s.objects[objectName] = content
	return nil
}

func (s *fakeStorage) GetObject(_ context.Context, objectName string) (io.ReadCloser, error) {
	content, ok := s.objects[objectName]
	if !ok {
		return nil, exceptions.ErrMinioGetObject(errors.New("no such object"), "test-bucket")
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (s *fakeStorage) RemoveObject(_ context.Context, objectName string) error {
	s.removed = append(s.removed, objectName)
	delete(s.objects, objectName)
	return nil
}

type classifierResult struct {
	prediction *contracts.Prediction
	err        error
}

type fakeClassifier struct {
	results []classifierResult
	calls   int
}

func (c *fakeClassifier) Predict(_ context.Context, _ []byte, _, _ string) (*contracts.Prediction, error) {
	result := c.results[c.calls]
	c.calls++
	return result.prediction, result.err
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	p.events = append(p.events, eventType)
	return nil
}

type fakeTransactor struct{}

func (t *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type testEnv struct {
	usecase          ConsultationUsecase
	consultationRepo *fakeConsultationRepository
	imageRepo        *fakeImageRepository
	patientRepo      *fakePatientRepository
	storage          *fakeStorage
	classifier       *fakeClassifier
	publisher        *fakePublisher
}

func newTestEnv(classifierResults ...classifierResult) *testEnv {
	env := &testEnv{
		consultationRepo: newFakeConsultationRepository(),
		imageRepo:        &fakeImageRepository{},
		patientRepo:      newFakePatientRepository(),
		storage:          newFakeStorage(),
		classifier:       &fakeClassifier{results: classifierResults},
		publisher:        &fakePublisher{},
	}
	logger := zap.NewNop()
	env.usecase = NewConsultationUsecase(
		env.consultationRepo,
		env.imageRepo,
		patients.NewPatientRegistry(env.patientRepo, logger),
		env.patientRepo,
		env.storage,
		env.classifier,
		env.publisher,
		&fakeTransactor{},
		logger,
	)
	return env
}

func medicoSession() *models.Session {
	return &models.Session{SessionID: "s1", UserID: "medico-1", Email: "doc@example.com", Role: models.RoleMedico}
}

func validPatient() requests.CreatePatient {
	return requests.CreatePatient{Nome: "Maria Silva", CPF: "123.456.789-00", Sexo: "FEMININO"}
}

func prediction(class string, probability float64) *contracts.Prediction {
	return &contracts.Prediction{Class: class, Probabilidade: probability}
}

func assertStatusCode(t *testing.T, err error, expected int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	assert.Equal(t, expected, customErr.StatusCode)
}

// ---- tests ----

func TestCreateConsultation(t *testing.T) {
	t.Run("snapshot comes from first image with a prediction", func(t *testing.T) {
		env := newTestEnv(
			classifierResult{prediction: nil},
			classifierResult{prediction: prediction("aom", 0.81)},
			classifierResult{prediction: prediction("csom", 0.99)},
		)

		request := &requests.CreateConsultation{
			Patient: validPatient(),
			Images: []requests.ImageUpload{
				{Content: []byte("one"), FileName: "a.jpg", ContentType: constvars.MIMEImageJPEG},
				{Content: []byte("two"), FileName: "b.jpg", ContentType: constvars.MIMEImageJPEG},
				{Content: []byte("three"), FileName: "c.jpg", ContentType: constvars.MIMEImageJPEG},
			},
		}

		response, err := env.usecase.CreateConsultation(context.Background(), medicoSession(), request)
		require.NoError(t, err)

		require.NotNil(t, response.AiDiagnosis)
		assert.Equal(t, "aom", *response.AiDiagnosis)
		require.NotNil(t, response.Confidence)
		assert.InDelta(t, 0.81, *response.Confidence, 1e-9)

		require.Len(t, response.Images, 3)
		assert.Nil(t, response.Images[0].AiDiagnosis, "unclassified image keeps no diagnosis")
		require.NotNil(t, response.Images[2].AiDiagnosis)
		assert.Equal(t, "csom", *response.Images[2].AiDiagnosis, "later image keeps its own result without touching the snapshot")

		assert.Len(t, env.storage.objects, 3)
		assert.Len(t, env.imageRepo.images, 3)
		for position, image := range env.imageRepo.images {
			assert.Equal(t, position, image.Position)
		}
		assert.Equal(t, []string{constvars.EventConsultationCreated}, env.publisher.events)
	})

	t.Run("same CPF resolves to the same patient across consultations", func(t *testing.T) {
		env := newTestEnv(
			classifierResult{prediction: prediction("Normal", 0.9)},
			classifierResult{prediction: prediction("Normal", 0.9)},
		)

		first, err := env.usecase.CreateConsultation(context.Background(), medicoSession(), &requests.CreateConsultation{
			Patient: validPatient(),
			Images:  []requests.ImageUpload{{Content: []byte("one"), FileName: "a.jpg", ContentType: constvars.MIMEImageJPEG}},
		})
		require.NoError(t, err)

		second, err := env.usecase.CreateConsultation(context.Background(), medicoSession(), &requests.CreateConsultation{
			Patient: requests.CreatePatient{Nome: "Maria S.", CPF: "12345678900", Sexo: "FEMININO"},
			Images:  []requests.ImageUpload{{Content: []byte("two"), FileName: "b.jpg", ContentType: constvars.MIMEImageJPEG}},
		})
		require.NoError(t, err)

		assert.Equal(t, first.Patient.ID, second.Patient.ID)
		count, _ := env.patientRepo.CountPatients(context.Background())
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects a request without images", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.CreateConsultation(context.Background(), medicoSession(), &requests.CreateConsultation{
			Patient: validPatient(),
		})
		assertStatusCode(t, err, constvars.StatusBadRequest)
	})

	t.Run("classifier failure fails the intake and removes uploaded blobs", func(t *testing.T) {
		env := newTestEnv(
			classifierResult{prediction: prediction("Normal", 0.9)},
			classifierResult{err: exceptions.ErrClassifierUnreachable(errors.New("connection refused"))},
		)

		_, err := env.usecase.CreateConsultation(context.Background(), medicoSession(), &requests.CreateConsultation{
			Patient: validPatient(),
			Images: []requests.ImageUpload{
				{Content: []byte("one"), FileName: "a.jpg", ContentType: constvars.MIMEImageJPEG},
				{Content: []byte("two"), FileName: "b.jpg", ContentType: constvars.MIMEImageJPEG},
			},
		})
		assertStatusCode(t, err, constvars.StatusBadGateway)

		assert.Empty(t, env.consultationRepo.consultations)
		assert.Empty(t, env.imageRepo.images)
		assert.Len(t, env.storage.removed, 2, "both uploaded blobs are removed")
		assert.Empty(t, env.storage.objects)
	})

	t.Run("upload failure removes earlier blobs", func(t *testing.T) {
		env := newTestEnv(classifierResult{prediction: prediction("Normal", 0.9)})
		env.storage.failUploadAt = 2

		_, err := env.usecase.CreateConsultation(context.Background(), medicoSession(), &requests.CreateConsultation{
			Patient: validPatient(),
			Images: []requests.ImageUpload{
				{Content: []byte("one"), FileName: "a.jpg", ContentType: constvars.MIMEImageJPEG},
				{Content: []byte("two"), FileName: "b.jpg", ContentType: constvars.MIMEImageJPEG},
			},
		})
		assertStatusCode(t, err, constvars.StatusInternalServerError)
		assert.Len(t, env.storage.removed, 1)
		assert.Empty(t, env.storage.objects)
	})

	t.Run("persistence failure removes all blobs", func(t *testing.T) {
		env := newTestEnv(classifierResult{prediction: prediction("Normal", 0.9)})
		env.consultationRepo.failCreate = true

		_, err := env.usecase.CreateConsultation(context.Background(), medicoSession(), &requests.CreateConsultation{
			Patient: validPatient(),
			Images:  []requests.ImageUpload{{Content: []byte("one"), FileName: "a.jpg", ContentType: constvars.MIMEImageJPEG}},
		})
		assertStatusCode(t, err, constvars.StatusInternalServerError)
		assert.Len(t, env.storage.removed, 1)
	})

	t.Run("rejects invalid patient data", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.CreateConsultation(context.Background(), medicoSession(), &requests.CreateConsultation{
			Patient: requests.CreatePatient{Nome: "Maria", CPF: "123", Sexo: "FEMININO"},
			Images:  []requests.ImageUpload{{Content: []byte("one"), FileName: "a.jpg", ContentType: constvars.MIMEImageJPEG}},
		})
		assertStatusCode(t, err, constvars.StatusBadRequest)
	})
}

func seedConsultation(env *testEnv, medicoID string) (*models.Consultation, *models.Image) {
	patient, _ := env.patientRepo.UpsertByCPF(context.Background(), &models.Patient{Nome: "Maria", CPF: "12345678900", Sexo: models.SexoFeminino})
	consultationID, _ := env.consultationRepo.CreateConsultation(context.Background(), &models.Consultation{
		PatientID: patient.ID,
		MedicoID:  medicoID,
	})
	imageID, _ := env.imageRepo.CreateImage(context.Background(), &models.Image{
		ConsultationID: consultationID,
		Position:       0,
		ObjectName:     "consultations/x/img.jpg",
		FileName:       "img.jpg",
		ContentType:    constvars.MIMEImageJPEG,
	})
	env.storage.objects["consultations/x/img.jpg"] = []byte("img-bytes")

	consultation, _ := env.consultationRepo.FindByID(context.Background(), consultationID)
	image, _ := env.imageRepo.FindByID(context.Background(), imageID)
	return consultation, image
}

func TestConfirmConsultationDiagnosis(t *testing.T) {
	t.Run("owner confirms with a symbolic diagnosis name", func(t *testing.T) {
		env := newTestEnv()
		consultation, _ := seedConsultation(env, "medico-1")

		response, err := env.usecase.ConfirmConsultationDiagnosis(context.Background(), medicoSession(), consultation.ID, &requests.ConfirmDiagnosis{
			FinalDiagnosis: "EXTERNAL_EAR_INFECTIONS",
		})
		require.NoError(t, err)
		assert.True(t, response.Confirmed)
		require.NotNil(t, response.FinalDiagnosis)
		assert.Equal(t, "ExternalEarInfections", *response.FinalDiagnosis)

		stored := env.consultationRepo.consultations[consultation.ID]
		assert.True(t, stored.Confirmed)
		assert.Equal(t, []string{constvars.EventDiagnosisConfirmed}, env.publisher.events)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		env := newTestEnv()
		consultation, _ := seedConsultation(env, "medico-2")

		_, err := env.usecase.ConfirmConsultationDiagnosis(context.Background(), medicoSession(), consultation.ID, &requests.ConfirmDiagnosis{
			FinalDiagnosis: "Normal",
		})
		assertStatusCode(t, err, constvars.StatusForbidden)
		assert.False(t, env.consultationRepo.consultations[consultation.ID].Confirmed)
	})

	t.Run("admin can confirm any consultation", func(t *testing.T) {
		env := newTestEnv()
		consultation, _ := seedConsultation(env, "medico-2")

		adminSession := &models.Session{SessionID: "s2", UserID: "admin-1", Role: models.RoleAdmin}
		_, err := env.usecase.ConfirmConsultationDiagnosis(context.Background(), adminSession, consultation.ID, &requests.ConfirmDiagnosis{
			FinalDiagnosis: "Normal",
		})
		assert.NoError(t, err)
	})

	t.Run("unknown consultation yields not found", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.ConfirmConsultationDiagnosis(context.Background(), medicoSession(), "missing", &requests.ConfirmDiagnosis{
			FinalDiagnosis: "Normal",
		})
		assertStatusCode(t, err, constvars.StatusNotFound)
	})

	t.Run("invalid diagnosis is rejected before any lookup", func(t *testing.T) {
		env := newTestEnv()
		consultation, _ := seedConsultation(env, "medico-1")

		_, err := env.usecase.ConfirmConsultationDiagnosis(context.Background(), medicoSession(), consultation.ID, &requests.ConfirmDiagnosis{
			FinalDiagnosis: "cholesteatoma",
		})
		assertStatusCode(t, err, constvars.StatusBadRequest)
	})

	t.Run("re-confirmation silently overwrites", func(t *testing.T) {
		env := newTestEnv()
		consultation, _ := seedConsultation(env, "medico-1")

		_, err := env.usecase.ConfirmConsultationDiagnosis(context.Background(), medicoSession(), consultation.ID, &requests.ConfirmDiagnosis{FinalDiagnosis: "aom"})
		require.NoError(t, err)
		response, err := env.usecase.ConfirmConsultationDiagnosis(context.Background(), medicoSession(), consultation.ID, &requests.ConfirmDiagnosis{FinalDiagnosis: "csom"})
		require.NoError(t, err)

		require.NotNil(t, response.FinalDiagnosis)
		assert.Equal(t, "csom", *response.FinalDiagnosis)
	})
}

func TestConfirmImageDiagnosis(t *testing.T) {
	t.Run("confirming an image leaves the consultation untouched", func(t *testing.T) {
		env := newTestEnv()
		consultation, image := seedConsultation(env, "medico-1")

		response, err := env.usecase.ConfirmImageDiagnosis(context.Background(), medicoSession(), image.ID, &requests.ConfirmDiagnosis{
			FinalDiagnosis: "earwax",
		})
		require.NoError(t, err)
		assert.True(t, response.Confirmed)
		require.NotNil(t, response.FinalDiagnosis)
		assert.Equal(t, "earwax", *response.FinalDiagnosis)

		stored := env.consultationRepo.consultations[consultation.ID]
		assert.False(t, stored.Confirmed, "consultation-level state is independent")
		assert.Nil(t, stored.FinalDiagnosis)
	})

	t.Run("access is checked against the owning consultation", func(t *testing.T) {
		env := newTestEnv()
		_, image := seedConsultation(env, "medico-2")

		_, err := env.usecase.ConfirmImageDiagnosis(context.Background(), medicoSession(), image.ID, &requests.ConfirmDiagnosis{
			FinalDiagnosis: "Normal",
		})
		assertStatusCode(t, err, constvars.StatusForbidden)
	})

	t.Run("unknown image yields not found", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.ConfirmImageDiagnosis(context.Background(), medicoSession(), "missing", &requests.ConfirmDiagnosis{
			FinalDiagnosis: "Normal",
		})
		assertStatusCode(t, err, constvars.StatusNotFound)
	})
}

func TestListConsultations(t *testing.T) {
	t.Run("medico only sees own consultations", func(t *testing.T) {
		env := newTestEnv()
		seedConsultation(env, "medico-1")
		seedConsultation(env, "medico-2")

		result, err := env.usecase.ListConsultations(context.Background(), medicoSession(), &requests.ListConsultations{})
		require.NoError(t, err)
		require.Len(t, result, 1)
		require.Len(t, result[0].Images, 1)
		require.NotNil(t, result[0].Patient)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		env := newTestEnv()
		seedConsultation(env, "medico-1")
		seedConsultation(env, "medico-2")

		adminSession := &models.Session{SessionID: "s2", UserID: "admin-1", Role: models.RoleAdmin}
		result, err := env.usecase.ListConsultations(context.Background(), adminSession, &requests.ListConsultations{})
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("cpf filter with no matching patient returns empty", func(t *testing.T) {
		env := newTestEnv()
		seedConsultation(env, "medico-1")

		result, err := env.usecase.ListConsultations(context.Background(), medicoSession(), &requests.ListConsultations{CPF: "99999999999"})
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("cpf filter is sanitized before matching", func(t *testing.T) {
		env := newTestEnv()
		seedConsultation(env, "medico-1")

		result, err := env.usecase.ListConsultations(context.Background(), medicoSession(), &requests.ListConsultations{CPF: "123.456.789-00"})
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("nome filter is a case-insensitive substring match", func(t *testing.T) {
		env := newTestEnv()
		seedFilterableConsultations(env)

		result, err := env.usecase.ListConsultations(context.Background(), medicoSession(), &requests.ListConsultations{Nome: "ANA"})
		require.NoError(t, err)
		assert.Len(t, result, 3, "both Ana and Mariana contain the substring")
	})

	t.Run("nome and cpf filters compose with AND", func(t *testing.T) {
		env := newTestEnv()
		anaOlder, anaNewer := seedFilterableConsultations(env)

		result, err := env.usecase.ListConsultations(context.Background(), medicoSession(), &requests.ListConsultations{
			Nome: "ana",
			CPF:  "111.111.111-11",
		})
		require.NoError(t, err)
		require.Len(t, result, 2, "Mariana matches the substring but not the cpf")
		assert.Equal(t, anaNewer, result[0].ID)
		assert.Equal(t, anaOlder, result[1].ID)
		require.NotNil(t, result[0].Patient)
		assert.Equal(t, "Ana Souza", result[0].Patient.Nome)
	})

	t.Run("consultations come back newest first", func(t *testing.T) {
		env := newTestEnv()
		anaOlder, anaNewer := seedFilterableConsultations(env)

		result, err := env.usecase.ListConsultations(context.Background(), medicoSession(), &requests.ListConsultations{CPF: "11111111111"})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, anaNewer, result[0].ID)
		assert.Equal(t, anaOlder, result[1].ID)
		assert.True(t, result[0].CreatedAt.After(result[1].CreatedAt))
	})
}

// seedFilterableConsultations stores visits for three patients of medico-1:
// two for Ana Souza (cpf 111...), one for Mariana Lima (cpf 222...) and one
// for Pedro Costa (cpf 333...). Returns Ana's consultation IDs, oldest first.
func seedFilterableConsultations(env *testEnv) (anaOlder, anaNewer string) {
	ana, _ := env.patientRepo.UpsertByCPF(context.Background(), &models.Patient{Nome: "Ana Souza", CPF: "11111111111", Sexo: models.SexoFeminino})
	mariana, _ := env.patientRepo.UpsertByCPF(context.Background(), &models.Patient{Nome: "Mariana Lima", CPF: "22222222222", Sexo: models.SexoFeminino})
	pedro, _ := env.patientRepo.UpsertByCPF(context.Background(), &models.Patient{Nome: "Pedro Costa", CPF: "33333333333", Sexo: models.SexoMasculino})

	base := time.Now()
	anaOlder, _ = env.consultationRepo.CreateConsultation(context.Background(), &models.Consultation{PatientID: ana.ID, MedicoID: "medico-1", CreatedAt: base})
	anaNewer, _ = env.consultationRepo.CreateConsultation(context.Background(), &models.Consultation{PatientID: ana.ID, MedicoID: "medico-1", CreatedAt: base.Add(time.Hour)})
	env.consultationRepo.CreateConsultation(context.Background(), &models.Consultation{PatientID: mariana.ID, MedicoID: "medico-1", CreatedAt: base.Add(2 * time.Hour)})
	env.consultationRepo.CreateConsultation(context.Background(), &models.Consultation{PatientID: pedro.ID, MedicoID: "medico-1", CreatedAt: base.Add(3 * time.Hour)})
	return anaOlder, anaNewer
}

func TestGetImageFile(t *testing.T) {
	t.Run("owner can download the original bytes", func(t *testing.T) {
		env := newTestEnv()
		_, image := seedConsultation(env, "medico-1")

		reader, imageModel, err := env.usecase.GetImageFile(context.Background(), medicoSession(), image.ID)
		require.NoError(t, err)
		defer reader.Close()

		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, []byte("img-bytes"), content)
		assert.Equal(t, "img.jpg", imageModel.FileName)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		env := newTestEnv()
		_, image := seedConsultation(env, "medico-2")

		_, _, err := env.usecase.GetImageFile(context.Background(), medicoSession(), image.ID)
		assertStatusCode(t, err, constvars.StatusForbidden)
	})
}
