package classifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"ptmd-service/internal/app/config"
	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/exceptions"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type httpClassifierClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPClassifierClient(internalConfig *config.InternalConfig) contracts.ClassifierClient {
	return &httpClassifierClient{
		BaseURL: strings.TrimSuffix(internalConfig.Classifier.BaseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.Classifier.TimeoutInSeconds) * time.Second,
		},
	}
}

// classifierResponse mirrors the service's JSON. The service is inconsistent
// about the casing of the class field ("class" vs "Class"); both are decoded
// and the upper-cased one wins when both are present. The secondary
// probability sometimes arrives as an empty string instead of a number.
type classifierResponse struct {
	Predictions []classifierPrediction `json:"predictions"`
	Error       string                 `json:"error"`
}

type classifierPrediction struct {
	ClassLower             string    `json:"class"`
	ClassUpper             string    `json:"Class"`
	Probabilidade          float64   `json:"Probabilidade"`
	MultClass              string    `json:"MultClass"`
	ProbabilidadeMultClass flexFloat `json:"ProbabilidadeMultClass"`
}

func (p *classifierPrediction) classValue() string {
	if p.ClassUpper != "" {
		return p.ClassUpper
	}
	return p.ClassLower
}

// flexFloat decodes a JSON number, a numeric string, an empty string or null.
type flexFloat struct {
	Value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		unquoted, err := strconv.Unquote(trimmed)
		if err != nil {
			return err
		}
		trimmed = unquoted
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("cannot parse %q as float", trimmed)
	}
	f.Value = &parsed
	return nil
}

func (c *httpClassifierClient) Predict(ctx context.Context, content []byte, fileName, contentType string) (*contracts.Prediction, error) {
	if fileName == "" {
		fileName = "image.jpg"
	}
	if contentType == "" {
		contentType = constvars.MIMEImageJPEG
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set(constvars.HeaderContentDisposition, fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set(constvars.HeaderContentType, contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, exceptions.ErrClassifierBuildRequest(err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, exceptions.ErrClassifierBuildRequest(err)
	}
	if err := writer.Close(); err != nil {
		return nil, exceptions.ErrClassifierBuildRequest(err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/predict", &body)
	if err != nil {
		return nil, exceptions.ErrClassifierBuildRequest(err)
	}
	request.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())

	response, err := c.HTTPClient.Do(request)
	if err != nil {
		return nil, exceptions.ErrClassifierUnreachable(err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		responseBody, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		err := fmt.Errorf("classifier responded %q", strings.TrimSpace(string(responseBody)))
		return nil, exceptions.ErrClassifierBadStatus(err, response.StatusCode)
	}

	var decoded classifierResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, exceptions.ErrClassifierDecodeResponse(err)
	}

	// Only the first prediction is consumed; an empty list means the service
	// produced no prediction for this image, which is not a failure.
	if len(decoded.Predictions) == 0 {
		return nil, nil
	}

	first := decoded.Predictions[0]
	prediction := &contracts.Prediction{
		Class:         first.classValue(),
		Probabilidade: first.Probabilidade,
	}
	if first.MultClass != "" {
		multClass := first.MultClass
		prediction.MultClass = &multClass
		prediction.ProbabilidadeMultClass = first.ProbabilidadeMultClass.Value
	}
	return prediction, nil
}
