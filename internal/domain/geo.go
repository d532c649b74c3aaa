package domain

// Coordinates географические координаты адреса
type Coordinates struct {
	Lat float64
	Lng float64
}

// AddressPair направленное ребро графа поездок: откуда -> куда
type AddressPair struct {
	Origin string
	Dest   string
}
