package tables

import (
	"context"
	"fmt"
	"path/filepath"

	apperrors "github.com/seanankenbruck/ti-bot/internal/errors"
	"github.com/xuri/excelize/v2"
)

// Default workbook names shipped with the bot
const (
	DefaultRoomsFile       = "Room_Dataset_V2.xlsx"
	DefaultDepartmentsFile = "University_Departments_Dataset_Beautiful.xlsx"
	DefaultGeneralFile     = "University_Chatbot_Dataset_v2.xlsx"
)

// XLSXConfig locates the three workbooks. Each table is read from the first
// worksheet of its workbook; the first row holds the column headers.
type XLSXConfig struct {
	Dir             string
	RoomsFile       string
	DepartmentsFile string
	GeneralFile     string
}

// XLSXSource loads the tables from Excel workbooks
type XLSXSource struct {
	config XLSXConfig
}

// NewXLSXSource creates a workbook-backed source, filling in default file names
func NewXLSXSource(config XLSXConfig) *XLSXSource {
	if config.RoomsFile == "" {
		config.RoomsFile = DefaultRoomsFile
	}
	if config.DepartmentsFile == "" {
		config.DepartmentsFile = DefaultDepartmentsFile
	}
	if config.GeneralFile == "" {
		config.GeneralFile = DefaultGeneralFile
	}
	return &XLSXSource{config: config}
}

// Name returns the source name
func (x *XLSXSource) Name() string {
	return "xlsx"
}

// Load reads all three workbooks
func (x *XLSXSource) Load(ctx context.Context) (*Tables, error) {
	roomSheet, err := x.readSheet(ctx, x.config.RoomsFile)
	if err != nil {
		return nil, apperrors.NewTableLoadError(err, x.Name(), "rooms")
	}
	rooms, err := parseRooms(roomSheet)
	if err != nil {
		return nil, err
	}

	deptSheet, err := x.readSheet(ctx, x.config.DepartmentsFile)
	if err != nil {
		return nil, apperrors.NewTableLoadError(err, x.Name(), "departments")
	}
	depts, err := parseDepartments(deptSheet)
	if err != nil {
		return nil, err
	}

	generalSheet, err := x.readSheet(ctx, x.config.GeneralFile)
	if err != nil {
		return nil, apperrors.NewTableLoadError(err, x.Name(), "general")
	}
	general, err := parseGeneral(generalSheet)
	if err != nil {
		return nil, err
	}

	return New(rooms, depts, general), nil
}

func (x *XLSXSource) readSheet(ctx context.Context, file string) (*sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(x.config.Dir, file)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}

	return newSheet(file, rows), nil
}
