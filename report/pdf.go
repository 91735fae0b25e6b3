package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/ayoisaiah/tasktimer/internal/timeutil"
)

var tableStyle = props.TableList{
	HeaderProp: props.TableListContent{
		Size:      10,
		GridSizes: []uint{6, 3, 3},
	},
	ContentProp: props.TableListContent{
		Size:      10,
		GridSizes: []uint{6, 3, 3},
	},
	Align:                consts.Center,
	AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
	HeaderContentSpace:   1,
}

func hoursText(d time.Duration) string {
	return fmt.Sprintf("%.2fh", timeutil.Hours(d))
}

func heading(doc pdf.Maroto, text string, size float64) {
	doc.Row(10, func() {
		doc.Col(12, func() {
			doc.Text(text, props.Text{
				Top:   3,
				Style: consts.Bold,
				Size:  size,
			})
		})
	})
}

// WritePDF renders the summary as an A4 document at path. since and until
// bound the reporting period shown in the header.
func (s *Summary) WritePDF(path string, since, until time.Time) error {
	doc := pdf.NewMaroto(consts.Portrait, consts.A4)
	doc.SetPageMargins(20, 10, 20)

	doc.RegisterHeader(func() {
		doc.Row(10, func() {
			doc.Col(12, func() {
				doc.Text("Time report", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		doc.Row(8, func() {
			doc.Col(12, func() {
				doc.Text(
					fmt.Sprintf(
						"%s - %s",
						since.Format("2006-01-02"),
						until.Format("2006-01-02"),
					),
					props.Text{Align: consts.Center, Size: 11},
				)
			})
		})
	})

	heading(doc, "Tasks", 14)

	tasks := make([][]string, 0, len(s.Tasks))
	for i := range s.Tasks {
		t := &s.Tasks[i]
		tasks = append(tasks, []string{
			t.label(),
			fmt.Sprintf("%d", t.Entries),
			hoursText(t.Duration),
		})
	}

	doc.TableList([]string{"Task", "Entries", "Tracked"}, tasks, tableStyle)

	heading(doc, "Days", 14)

	days := make([][]string, 0, len(s.Days))
	for _, d := range s.Days {
		days = append(days, []string{d.Date, "", hoursText(d.Duration)})
	}

	doc.TableList([]string{"Date", "", "Tracked"}, days, tableStyle)

	doc.Row(20, func() {
		doc.Col(12, func() {
			doc.Text("Total: "+hoursText(s.Total), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	return doc.OutputFileAndClose(path)
}
