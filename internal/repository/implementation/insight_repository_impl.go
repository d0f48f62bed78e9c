package implementation

import (
	"context"
	"database/sql"

	"pos-intelligence-be/internal/repository/contract"

	"gorm.io/gorm"
)

type InsightRepositoryImpl struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) contract.InsightRepository {
	return &InsightRepositoryImpl{db: db}
}

// ExecuteReadOnly runs the generated statement inside a read-only
// transaction that is always rolled back, so even a query that slipped past
// sanitization cannot commit a mutation. The connection is released on
// every exit path.
func (r *InsightRepositoryImpl) ExecuteReadOnly(ctx context.Context, query string) ([]map[string]interface{}, error) {
	tx := r.db.WithContext(ctx).Begin(&sql.TxOptions{ReadOnly: true})
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	rows, err := tx.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		record := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			v := values[i]
			// Drivers hand text columns back as []byte
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			record[col] = v
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
