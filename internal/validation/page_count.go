package validation

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

const checkPageCount = "page count"

// CountPDFPages counts the pages of an in-memory PDF by reading its page tree
func CountPDFPages(data []byte) (n int, err error) {
	if len(data) == 0 {
		return 0, &Error{Check: checkPageCount, Message: "empty document"}
	}

	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, &Error{Check: checkPageCount, Message: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, &Error{Check: checkPageCount, Message: "unreadable PDF", Cause: err}
	}
	return r.NumPage(), nil
}

// CountPDFFilePages counts the pages of a PDF file on disk
func CountPDFFilePages(pdfPath string) (int, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return 0, &FileReadError{Path: pdfPath, Cause: err}
	}
	return CountPDFPages(data)
}
