// Package grid はコントリビューショングラフのカレンダーグリッド構築を提供する。
// 日付範囲と日付付きエントリ集合から、週単位の行とセルごとの表示状態を
// 導出する純粋関数のみを含む。状態は描画のたびに再計算され、保存されない。
package grid

import (
	"time"

	"github.com/hitoshi/kusa/internal/model"
)

// dateLayout はエントリ日付との照合に使う日付書式。
const dateLayout = "2006-01-02"

// VisualState はセルの表示状態。3つの終端状態のみで遷移はない。
type VisualState string

const (
	// StateNoEntry はその日のエントリが存在しないことを示す。
	StateNoEntry VisualState = "noEntry"
	// StateEntryNoPost はエントリは存在するが公開可能な投稿がないことを示す。
	StateEntryNoPost VisualState = "entryNoPost"
	// StatePublishedPost は公開済み投稿が紐付いていることを示す。
	StatePublishedPost VisualState = "publishedPost"
)

// Day は1日分のセル。
// Entryは対応するEntrySummaryへの参照で、所有権は持たない。
type Day struct {
	Date  time.Time
	State VisualState
	Entry *model.EntrySummary
}

// DateString はセルの日付をyyyy-MM-dd形式で返す。
func (d Day) DateString() string {
	return d.Date.Format(dateLayout)
}

// Week は最大7日分のセル列。最終週のみ短い場合がある。週は月曜始まり。
type Week []Day

// Build は日付範囲とエントリ集合から週単位のグリッドを構築する。
//
// startを直近の月曜（start自身が月曜ならそのまま）まで巻き戻し、そこから
// endまでの全暦日を列挙して7日ごとの週に分割する。端数は短い最終週になる。
// 各日の表示状態は、日付文字列（yyyy-MM-dd）が厳密一致するエントリの有無と
// そのPostIDで決まる。エントリは事前に日付文字列で索引化するため、
// 範囲の日数に対して線形時間で構築できる。
func Build(start, end time.Time, entries []model.EntrySummary) []Week {
	byDate := indexByDate(entries)

	var weeks []Week
	current := make(Week, 0, 7)

	for day := snapToMonday(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		if len(current) == 7 {
			weeks = append(weeks, current)
			current = make(Week, 0, 7)
		}

		cell := Day{Date: day, State: StateNoEntry}
		if entry, ok := byDate[day.Format(dateLayout)]; ok {
			cell.Entry = entry
			if entry.HasPost() {
				cell.State = StatePublishedPost
			} else {
				cell.State = StateEntryNoPost
			}
		}
		current = append(current, cell)
	}

	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

// Months は範囲が跨る月ラベル（"Jan"形式）を初出順で返す。
// ヘッダー行の表示専用。Buildと同じく月曜へ巻き戻した範囲を列挙する。
func Months(start, end time.Time) []string {
	seen := make(map[string]bool)
	var months []string

	for day := snapToMonday(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		label := day.Format("Jan")
		if !seen[label] {
			seen[label] = true
			months = append(months, label)
		}
	}
	return months
}

// snapToMonday は直近の月曜まで日付を巻き戻す。月曜ならそのまま返す。
func snapToMonday(t time.Time) time.Time {
	// time.Weekdayは日曜=0のため月曜=1を基準に変換する
	offset := (int(t.Weekday()) - int(time.Monday) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// indexByDate はエントリを日付文字列で索引化する。
// 同一日付が複数ある場合は先のもの（公開日の降順で新しいもの）を採用する。
func indexByDate(entries []model.EntrySummary) map[string]*model.EntrySummary {
	byDate := make(map[string]*model.EntrySummary, len(entries))
	for i := range entries {
		if entries[i].Date == "" {
			continue
		}
		if _, ok := byDate[entries[i].Date]; !ok {
			byDate[entries[i].Date] = &entries[i]
		}
	}
	return byDate
}
