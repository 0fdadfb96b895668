package models

import (
	"fmt"
	"strings"
)

// Diagnosis is the closed set of final diagnoses a doctor can confirm.
// The canonical strings below are also the wire values.
type Diagnosis string

const (
	DiagnosisNormal                Diagnosis = "Normal"
	DiagnosisAOM                   Diagnosis = "aom"
	DiagnosisCSOM                  Diagnosis = "csom"
	DiagnosisEarwax                Diagnosis = "earwax"
	DiagnosisExternalEarInfections Diagnosis = "ExternalEarInfections"
	DiagnosisTympanoskleros        Diagnosis = "tympanoskleros"
)

var diagnosisSymbolicNames = map[string]Diagnosis{
	"NORMAL":                  DiagnosisNormal,
	"AOM":                     DiagnosisAOM,
	"CSOM":                    DiagnosisCSOM,
	"EARWAX":                  DiagnosisEarwax,
	"EXTERNAL_EAR_INFECTIONS": DiagnosisExternalEarInfections,
	"TYMPANOSKLEROS":          DiagnosisTympanoskleros,
}

func Diagnoses() []Diagnosis {
	return []Diagnosis{
		DiagnosisNormal,
		DiagnosisAOM,
		DiagnosisCSOM,
		DiagnosisEarwax,
		DiagnosisExternalEarInfections,
		DiagnosisTympanoskleros,
	}
}

// ParseDiagnosis accepts a case-insensitive match of the canonical value, or
// the symbolic name with '-' normalized to '_'. Anything else is rejected.
func ParseDiagnosis(value string) (Diagnosis, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("diagnosis is empty")
	}

	for _, diagnosis := range Diagnoses() {
		if strings.EqualFold(string(diagnosis), trimmed) {
			return diagnosis, nil
		}
	}

	symbolic := strings.ReplaceAll(strings.ToUpper(trimmed), "-", "_")
	if diagnosis, ok := diagnosisSymbolicNames[symbolic]; ok {
		return diagnosis, nil
	}

	return "", fmt.Errorf("invalid diagnosis %q", value)
}

func (d Diagnosis) String() string {
	return string(d)
}
