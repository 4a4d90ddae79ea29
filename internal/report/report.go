package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"

	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Document is a finished quiz flattened for rendering.
type Document struct {
	Topic        string
	Difficulty   string
	QuestionType string
	Score        int
	Total        int
	TakenAt      time.Time
	Rows         []Row
}

type Row struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	Feedback      string
}

// Render returns the encoded document and its content type.
func Render(format string, doc Document) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case "", FormatPDF:
		b, err := RenderPDF(doc)
		return b, ContentTypePDF, err
	case FormatXLSX:
		b, err := RenderXLSX(doc)
		return b, ContentTypeXLSX, err
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func Filename(doc Document, format string) string {
	if format == "" {
		format = FormatPDF
	}
	return fmt.Sprintf("quiz-result-%s.%s", doc.TakenAt.Format("20060102-150405"), strings.ToLower(format))
}

func verdictLabel(ok bool) string {
	if ok {
		return "Correct"
	}
	return "Incorrect"
}

func RenderPDF(doc Document) ([]byte, error) {
	p := fpdf.New("P", "mm", "A4", "")
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.SetMargins(15, 15, 15)
	p.SetAutoPageBreak(true, 15)
	p.AddPage()

	p.SetFont("Helvetica", "B", 16)
	p.MultiCell(0, 8, tr(doc.Topic), "", "L", false)
	p.Ln(2)

	p.SetFont("Helvetica", "", 11)
	p.CellFormat(0, 6, fmt.Sprintf("Score: %d / %d", doc.Score, doc.Total), "", 1, "L", false, 0, "")
	p.CellFormat(0, 6, tr(fmt.Sprintf("Difficulty: %s   Type: %s", doc.Difficulty, doc.QuestionType)), "", 1, "L", false, 0, "")
	p.CellFormat(0, 6, "Taken: "+doc.TakenAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	p.Ln(4)

	for i, row := range doc.Rows {
		p.SetFont("Helvetica", "B", 11)
		p.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, row.Question)), "", "L", false)

		p.SetFont("Helvetica", "", 10)
		if row.IsCorrect {
			p.SetTextColor(0, 128, 0)
		} else {
			p.SetTextColor(192, 0, 0)
		}
		p.CellFormat(0, 5, verdictLabel(row.IsCorrect), "", 1, "L", false, 0, "")
		p.SetTextColor(0, 0, 0)

		p.MultiCell(0, 5, tr("Your answer: "+row.UserAnswer), "", "L", false)
		p.MultiCell(0, 5, tr("Correct answer: "+row.CorrectAnswer), "", "L", false)
		if row.Feedback != "" {
			p.MultiCell(0, 5, tr("Feedback: "+row.Feedback), "", "L", false)
		}
		p.Ln(3)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

const sheetName = "Result"

func RenderXLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	summary := [][]interface{}{
		{"Topic", doc.Topic},
		{"Difficulty", doc.Difficulty},
		{"Question type", doc.QuestionType},
		{"Score", fmt.Sprintf("%d / %d", doc.Score, doc.Total)},
		{"Taken", doc.TakenAt.Format("2006-01-02 15:04")},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	headerRow := len(summary) + 2
	header := []interface{}{"#", "Question", "Your answer", "Correct answer", "Result", "Feedback"}
	cell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetSheetRow(sheetName, cell, &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), headerRow)
	if err := f.SetCellStyle(sheetName, cell, last, bold); err != nil {
		return nil, err
	}

	for i, r := range doc.Rows {
		values := []interface{}{i + 1, r.Question, r.UserAnswer, r.CorrectAnswer, verdictLabel(r.IsCorrect), r.Feedback}
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(sheetName, "B", "B", 60)
	_ = f.SetColWidth(sheetName, "C", "D", 30)
	_ = f.SetColWidth(sheetName, "F", "F", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
