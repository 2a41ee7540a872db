package exchange

// MaxValuePlan finds the redemption spending the most balls within budget.
// Unbounded quantities per prize; DP over the ball budget (unbounded
// knapsack where value == cost, so "most balls spent" == "least leftover").
func MaxValuePlan(cat Catalog, budgetBalls int) Plan {
	if budgetBalls <= 0 || len(cat.Prizes) == 0 {
		return Plan{LeftoverBalls: max(budgetBalls, 0)}
	}

	// dp[b] = max balls spendable with budget exactly b
	dp := make([]int, budgetBalls+1)
	choose := make([]int, budgetBalls+1)
	for b := range choose {
		choose[b] = -1
	}
	for b := 0; b <= budgetBalls; b++ {
		for i, p := range cat.Prizes {
			if p.Balls <= 0 {
				continue
			}
			nb := b + p.Balls
			if nb > budgetBalls {
				continue
			}
			if val := dp[b] + p.Balls; val > dp[nb] {
				dp[nb] = val
				choose[nb] = i
			}
		}
	}

	bestB := 0
	for b := 0; b <= budgetBalls; b++ {
		if dp[b] > dp[bestB] {
			bestB = b
		}
	}

	// reconstruct quantities
	counts := map[int]int{}
	b := bestB
	for b > 0 && choose[b] != -1 {
		i := choose[b]
		counts[i]++
		b -= cat.Prizes[i].Balls
	}

	var plan Plan
	for i := range cat.Prizes {
		qty := counts[i]
		if qty == 0 {
			continue
		}
		p := cat.Prizes[i]
		plan.Items = append(plan.Items, Item{
			PrizeID: p.ID,
			Name:    p.Name,
			Qty:     qty,
			Balls:   p.Balls * qty,
		})
		plan.SpentBalls += p.Balls * qty
	}
	plan.LeftoverBalls = budgetBalls - plan.SpentBalls
	return plan
}
