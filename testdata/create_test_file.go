//go:build ignore

// Generates testdata/sample.xlsx: go run testdata/create_test_file.go
package main

import (
	"log"
	"time"

	"github.com/elex-project/xelhua/pkg/xelhua"
)

func main() {
	doc := xelhua.New()
	defer doc.Close()

	staff, err := doc.Sheet("Staff")
	if err != nil {
		log.Fatal(err)
	}

	header := xelhua.NewStyleBuilder(doc).
		Font(xelhua.NewFontBuilder(doc).Bold(true).Color(xelhua.White).Get()).
		Background(xelhua.DarkBlue).
		AlignHorizontal(xelhua.AlignCenter).
		BorderBottom(xelhua.BorderThin)
	if err := header.Err(); err != nil {
		log.Fatal(err)
	}

	headers := []string{"Name", "Age", "City", "Joined", "Active"}
	for col, h := range headers {
		c, err := staff.Cell(0, col)
		if err != nil {
			log.Fatal(err)
		}
		must(c.WriteString(h))
		must(c.SetStyle(header.Get()))
	}

	rows := []struct {
		name   string
		age    float64
		city   string
		joined time.Time
		active bool
	}{
		{"Alice", 30, "New York", time.Date(2019, 4, 1, 0, 0, 0, 0, time.Local), true},
		{"Bob", 25, "San Francisco", time.Date(2021, 9, 15, 0, 0, 0, 0, time.Local), true},
		{"Charlie", 35, "Seattle", time.Date(2016, 1, 11, 0, 0, 0, 0, time.Local), false},
		{"David", 28, "Austin", time.Date(2022, 6, 30, 0, 0, 0, 0, time.Local), true},
		{"Eve", 32, "Boston", time.Date(2018, 11, 5, 0, 0, 0, 0, time.Local), true},
	}
	for i, r := range rows {
		row, err := staff.Row(i + 1)
		if err != nil {
			log.Fatal(err)
		}
		cells := make([]*xelhua.Cell, len(headers))
		for col := range cells {
			if cells[col], err = row.Cell(col); err != nil {
				log.Fatal(err)
			}
		}
		must(cells[0].WriteString(r.name))
		must(cells[1].WriteNumber(r.age))
		must(cells[2].WriteString(r.city))
		must(cells[3].WriteDate(r.joined))
		must(cells[4].WriteBool(r.active))
	}

	total, err := staff.Cell(len(rows)+1, 1)
	if err != nil {
		log.Fatal(err)
	}
	must(total.WriteFormula("AVERAGE(B2:B6)"))
	must(staff.AutoSizeColumns())

	notes, err := doc.Sheet("Notes")
	if err != nil {
		log.Fatal(err)
	}
	title, err := notes.CellAt("A1")
	if err != nil {
		log.Fatal(err)
	}
	must(title.WriteString("Quarterly summary"))
	must(notes.MergeCells(0, 0, 0, 3))
	row, err := notes.Row(0)
	if err != nil {
		log.Fatal(err)
	}
	must(row.SetHeight(24))

	path, err := doc.Save("testdata/sample")
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("created %s", path)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
