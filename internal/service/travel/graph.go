package travel

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Graph направленный граф поездок, построенный на адресах одного запроса:
// базовый адрес, адрес кандидата и адреса всех занятых интервалов дня
//
// Предрасчёт всех рёбер заранее ограничивает внешние вызовы O(n^2)
// на маленьком n вместо O(n) на каждого кандидата сетки
type Graph struct {
	edges map[domain.AddressPair]int
}

// NewGraph собирает граф из готового набора рёбер
func NewGraph(edges map[domain.AddressPair]int) *Graph {
	return &Graph{edges: edges}
}

// Minutes возвращает время в пути по ребру графа
// Для совпадающих адресов всегда 0
func (g *Graph) Minutes(origin, dest string) (int, bool) {
	if origin == dest {
		return 0, true
	}
	minutes, ok := g.edges[domain.AddressPair{Origin: origin, Dest: dest}]
	return minutes, ok
}

// Size возвращает количество рёбер графа
func (g *Graph) Size() int {
	return len(g.edges)
}

// BuildGraph разрешает все направленные пары различных адресов конкурентно
// Все нужные пары известны заранее, поэтому рёбра считаются параллельно
// (с ограничением MaxConcurrent) и метод ждёт завершения всех расчётов
// до возврата - проход TravelGate начинается только по полному графу
//
// Первый сбой геокодирования фатален для всего построения
func (s *Service) BuildGraph(ctx context.Context, addresses []string) (*Graph, error) {
	unique := dedupe(addresses)

	type edge struct {
		pair    domain.AddressPair
		minutes int
	}

	pairs := make([]domain.AddressPair, 0, len(unique)*(len(unique)-1))
	for _, origin := range unique {
		for _, dest := range unique {
			if origin == dest {
				continue
			}
			pairs = append(pairs, domain.AddressPair{Origin: origin, Dest: dest})
		}
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	edges := make(map[domain.AddressPair]int, len(pairs))
	sem := make(chan struct{}, s.cfg.MaxConcurrent)

	for _, pair := range pairs {
		wg.Add(1)
		go func(pair domain.AddressPair) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			minutes, err := s.ResolveMinutes(ctx, pair.Origin, pair.Dest)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			edges[pair] = minutes
		}(pair)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	s.log.Debug("Travel: graph built, addresses=%d, edges=%d", len(unique), len(edges))
	return &Graph{edges: edges}, nil
}

// dedupe убирает дубликаты и пустые адреса, сохраняя порядок появления
func dedupe(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	unique := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		unique = append(unique, addr)
	}
	return unique
}
