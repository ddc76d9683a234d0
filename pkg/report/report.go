// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report stores conversion reports as Parquet files, one row per
// converted game, for bulk analysis of large conversion runs.
package report

import (
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"laptudirm.com/x/pgn4/pkg/pgn4"
)

// Row is the record of a single converted game.
type Row struct {
	Source string `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8"`
	Game   int32  `parquet:"name=game, type=INT32"`

	Variant  string `parquet:"name=variant, type=BYTE_ARRAY, convertedtype=UTF8"`
	StartFEN string `parquet:"name=start_fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Files    int32  `parquet:"name=files, type=INT32"`
	Ranks    int32  `parquet:"name=ranks, type=INT32"`
	Result   string `parquet:"name=result, type=BYTE_ARRAY, convertedtype=UTF8"`

	Resolved        int32  `parquet:"name=resolved, type=INT32"`
	UnresolvedCount int32  `parquet:"name=unresolved_count, type=INT32"`
	Unresolved      string `parquet:"name=unresolved, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Rows flattens the report of converting source into rows.
func Rows(source string, report *pgn4.Report) []Row {
	rows := make([]Row, 0, len(report.Games))
	for _, game := range report.Games {
		rows = append(rows, Row{
			Source:          source,
			Game:            int32(game.Index),
			Variant:         game.Variant,
			StartFEN:        game.StartFEN,
			Files:           int32(game.Dimensions.Files),
			Ranks:           int32(game.Dimensions.Ranks),
			Result:          game.Result.String(),
			Resolved:        int32(game.Resolved),
			UnresolvedCount: int32(len(game.Unresolved)),
			Unresolved:      strings.Join(game.Unresolved, " "),
		})
	}

	return rows
}

// Write writes the given rows to a snappy compressed Parquet file.
func Write(path string, rows []Row, parallel int64) error {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(Row), parallel)
	if err != nil {
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := parquetWriter.Write(row); err != nil {
			return err
		}
	}

	if err := parquetWriter.WriteStop(); err != nil {
		return err
	}

	return fileWriter.Close()
}

// Read reads every row of the given Parquet report file.
func Read(path string, parallel int64) ([]Row, error) {
	fileReader, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(Row), parallel)
	if err != nil {
		return nil, err
	}
	defer parquetReader.ReadStop()

	rows := make([]Row, parquetReader.GetNumRows())
	if err := parquetReader.Read(&rows); err != nil {
		return nil, err
	}

	return rows, nil
}
