package usecase

import "newsfeed/internal/domain"

// Interleave раскладывает ранжированную пачку каруселью по рубрикам,
// чтобы в выдаче не было длинных серий одной рубрики. Применяется только
// для селектора "all".
//
// Пачка разбивается на очереди по рубрикам с сохранением внутреннего
// (уже ранжированного) порядка; порядок обхода очередей фиксируется по
// первому появлению рубрики в ранжированной пачке, поэтому самая весомая
// рубрика открывает выдачу. Раунды повторяются до исчерпания всех очередей.
// Результат - перестановка входа.
func Interleave(batch []domain.Article) []domain.Article {
	queues := make(map[domain.Category][]domain.Article)
	order := make([]domain.Category, 0)
	for _, a := range batch {
		if _, seen := queues[a.Category]; !seen {
			order = append(order, a.Category)
		}
		queues[a.Category] = append(queues[a.Category], a)
	}
	out := make([]domain.Article, 0, len(batch))
	for len(out) < len(batch) {
		for _, c := range order {
			if q := queues[c]; len(q) > 0 {
				out = append(out, q[0])
				queues[c] = q[1:]
			}
		}
	}
	return out
}
