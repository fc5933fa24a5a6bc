package loan

import "lending/core"

// DefaultLTVPercent ltv of collateral types missing from the table
const DefaultLTVPercent uint64 = 50

// LTVTable loan to value percent by collateral type
type LTVTable map[core.CollateralType]uint64

// DefaultLTV gold 70%, crypto 50%
func DefaultLTV() LTVTable {
	return LTVTable{
		core.CollateralTypeGold:   70,
		core.CollateralTypeCrypto: 50,
	}
}

// Lookup ltv percent of the collateral type, never zero
func (t LTVTable) Lookup(typ core.CollateralType) uint64 {
	if v, ok := t[typ]; ok && v > 0 {
		return v
	}

	return DefaultLTVPercent
}

// ParseLTVTable build a table from collateral type names, e.g. {"gold": 70}
func ParseLTVTable(values map[string]uint64) (LTVTable, error) {
	table := DefaultLTV()
	for name, v := range values {
		typ, err := core.ParseCollateralType(name)
		if err != nil {
			return nil, err
		}

		if err := Require(v > 0 && v <= 100, core.ErrInvalidAmount); err != nil {
			return nil, err
		}

		table[typ] = v
	}

	return table, nil
}
