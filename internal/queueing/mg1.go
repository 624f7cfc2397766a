package queueing

// solveMG1 applies the Pollaczek-Khinchin mean-value formula. Service is not
// memoryless, so there is no state table: only the means have closed forms.
func solveMG1(m Model, p Parameters) (Result, error) {
	lambda := p.Lambda
	meanService := 1 / p.Mu
	variance := meanService * meanService
	if p.ServiceVariance != nil {
		variance = *p.ServiceVariance
	}

	rho := lambda * meanService
	lq := (lambda*lambda*variance + rho*rho) / (2 * (1 - rho))
	wq := lq / lambda

	return Result{
		Model: m,
		Rho:   rho,
		P0:    1 - rho,
		L:     rho + lq,
		Lq:    lq,
		W:     wq + meanService,
		Wq:    wq,
	}, nil
}
