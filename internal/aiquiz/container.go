package aiquiz

import "context"

type AIQuizContainer struct {
	Oracle  Oracle
	Service Service
}

func NewAIQuizContainer(ctx context.Context, cfg OracleConfig) (*AIQuizContainer, error) {
	oracle, err := NewOracle(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &AIQuizContainer{
		Oracle:  oracle,
		Service: NewService(oracle),
	}, nil
}
