package application

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	analyticsdomain "preprocess/internal/analytics/domain"
	"preprocess/internal/export/domain"
	sessionsdomain "preprocess/internal/sessions/domain"
)

// ExportService produit les sorties tabulaires du pipeline: la table finale
// en CSV (contrat) ou Parquet, et la matrice de corrélation annexe
type ExportService struct {
	batchSize int
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService() *ExportService {
	return &ExportService{
		batchSize: 1000,
	}
}

// BuildRows construit les lignes de sortie dans l'ordre des sessions
func (s *ExportService) BuildRows(features []*sessionsdomain.SessionFeatures) ([]*domain.SessionOutputRow, error) {
	rows := make([]*domain.SessionOutputRow, 0, len(features))
	for _, sf := range features {
		row, err := domain.NewSessionOutputRow(sf)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportSessionsToCSV sérialise la table finale en CSV
// Une ligne par session survivante, dans l'ordre de première apparition
func (s *ExportService) ExportSessionsToCSV(features []*sessionsdomain.SessionFeatures) ([]byte, error) {
	rows, err := s.BuildRows(features)
	if err != nil {
		return nil, err
	}

	// Pré-allocation du buffer pour éviter les réallocations successives
	buf := bytes.NewBuffer(make([]byte, 0, 64*1024))
	w := csv.NewWriter(buf)

	if err := w.Write(domain.CSVHeaders()); err != nil {
		return nil, err
	}

	for i, row := range rows {
		if err := w.Write(row.ToCSVRow()); err != nil {
			return nil, err
		}
		// Flush périodique pour limiter la pression mémoire du writer
		if (i+1)%s.batchSize == 0 {
			w.Flush()
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportSessionsToParquet sérialise la table finale en Parquet (en mémoire)
func (s *ExportService) ExportSessionsToParquet(features []*sessionsdomain.SessionFeatures) ([]byte, error) {
	rows, err := s.BuildRows(features)
	if err != nil {
		return nil, err
	}

	fw := buffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(domain.SessionOutputRow), 2)
	if err != nil {
		return nil, fmt.Errorf("creating parquet writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			return nil, fmt.Errorf("writing parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finalizing parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}

	return fw.Bytes(), nil
}

// BuildCorrelationMatrix calcule la matrice de corrélation des sept colonnes
// de la table finale
func (s *ExportService) BuildCorrelationMatrix(features []*sessionsdomain.SessionFeatures) (*analyticsdomain.CorrelationMatrix, error) {
	rows, err := s.BuildRows(features)
	if err != nil {
		return nil, err
	}

	// En-têtes sans la colonne d'index
	labels := domain.CSVHeaders()[1:]
	columns := make([][]float64, len(labels))
	for i := range columns {
		columns[i] = make([]float64, len(rows))
	}

	for j, row := range rows {
		columns[0][j] = row.Duration
		columns[1][j] = row.AvgPrice
		columns[2][j] = row.AvgDiscountPercent
		columns[3][j] = row.TotalDiscountPercent
		columns[4][j] = row.AvgDiscountValue
		columns[5][j] = row.TotalDiscountValue
		columns[6][j] = row.Probability
	}

	return analyticsdomain.NewCorrelationMatrix(labels, columns)
}

// ExportCorrelationToCSV sérialise le triangle inférieur strict de la
// matrice de corrélation; les cellules hors triangle restent vides
func (s *ExportService) ExportCorrelationToCSV(matrix *analyticsdomain.CorrelationMatrix) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4*1024))
	w := csv.NewWriter(buf)

	labels := matrix.Labels()
	if err := w.Write(append([]string{""}, labels...)); err != nil {
		return nil, err
	}

	for i, label := range labels {
		record := make([]string, 0, len(labels)+1)
		record = append(record, label)
		for j := range labels {
			v := matrix.At(i, j)
			if math.IsNaN(v) {
				record = append(record, "")
			} else {
				record = append(record, domain.FormatFloat(v))
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
