package models

import (
	"encoding/json"
	"math"
)

// jsonFloat marshals the non-finite values encoding/json rejects: NaN
// becomes null, infinities become "Inf"/"-Inf" strings.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte("null"), nil
	case math.IsInf(v, 1):
		return []byte(`"Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null":
		*f = jsonFloat(math.NaN())
		return nil
	case `"Inf"`:
		*f = jsonFloat(math.Inf(1))
		return nil
	case `"-Inf"`:
		*f = jsonFloat(math.Inf(-1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

func (c CoherenceCurve) MarshalJSON() ([]byte, error) {
	type alias CoherenceCurve
	return json.Marshal(struct {
		alias
		Forward  jsonFloat `json:"forward"`
		Backward jsonFloat `json:"backward"`
		StdDev   jsonFloat `json:"std_dev"`
		StdErr   jsonFloat `json:"std_err"`
	}{alias(c), jsonFloat(c.Forward), jsonFloat(c.Backward), jsonFloat(c.StdDev), jsonFloat(c.StdErr)})
}

func (c *CoherenceCurve) UnmarshalJSON(b []byte) error {
	type alias CoherenceCurve
	aux := struct {
		*alias
		Forward  jsonFloat `json:"forward"`
		Backward jsonFloat `json:"backward"`
		StdDev   jsonFloat `json:"std_dev"`
		StdErr   jsonFloat `json:"std_err"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.Forward = float64(aux.Forward)
	c.Backward = float64(aux.Backward)
	c.StdDev = float64(aux.StdDev)
	c.StdErr = float64(aux.StdErr)
	return nil
}

func (d DecayAnalysis) MarshalJSON() ([]byte, error) {
	type alias DecayAnalysis
	lags := make(map[int]jsonFloat, len(d.CoherenceAtLags))
	for k, v := range d.CoherenceAtLags {
		lags[k] = jsonFloat(v)
	}
	return json.Marshal(struct {
		alias
		Lambda          jsonFloat         `json:"lambda"`
		CoherenceRadius jsonFloat         `json:"coherence_radius"`
		FitQuality      jsonFloat         `json:"fit_quality"`
		FittedC0        jsonFloat         `json:"fitted_c0"`
		CoherenceAtLags map[int]jsonFloat `json:"coherence_at_lags"`
	}{alias(d), jsonFloat(d.Lambda), jsonFloat(d.CoherenceRadius), jsonFloat(d.FitQuality), jsonFloat(d.FittedC0), lags})
}

func (d *DecayAnalysis) UnmarshalJSON(b []byte) error {
	type alias DecayAnalysis
	aux := struct {
		*alias
		Lambda          jsonFloat         `json:"lambda"`
		CoherenceRadius jsonFloat         `json:"coherence_radius"`
		FitQuality      jsonFloat         `json:"fit_quality"`
		FittedC0        jsonFloat         `json:"fitted_c0"`
		CoherenceAtLags map[int]jsonFloat `json:"coherence_at_lags"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d.Lambda = float64(aux.Lambda)
	d.CoherenceRadius = float64(aux.CoherenceRadius)
	d.FitQuality = float64(aux.FitQuality)
	d.FittedC0 = float64(aux.FittedC0)
	if aux.CoherenceAtLags != nil {
		d.CoherenceAtLags = make(map[int]float64, len(aux.CoherenceAtLags))
		for k, v := range aux.CoherenceAtLags {
			d.CoherenceAtLags[k] = float64(v)
		}
	}
	return nil
}

func (a AsymmetryAnalysis) MarshalJSON() ([]byte, error) {
	type alias AsymmetryAnalysis
	return json.Marshal(struct {
		alias
		KappaMax     jsonFloat `json:"kappa_max"`
		KappaSum     jsonFloat `json:"kappa_sum"`
		Delta        jsonFloat `json:"delta"`
		ForwardMean  jsonFloat `json:"forward_mean"`
		BackwardMean jsonFloat `json:"backward_mean"`
		ISI          jsonFloat `json:"isi"`
		ISIExp       jsonFloat `json:"isi_exp"`
	}{alias(a), jsonFloat(a.KappaMax), jsonFloat(a.KappaSum), jsonFloat(a.Delta), jsonFloat(a.ForwardMean), jsonFloat(a.BackwardMean), jsonFloat(a.ISI), jsonFloat(a.ISIExp)})
}

func (a *AsymmetryAnalysis) UnmarshalJSON(b []byte) error {
	type alias AsymmetryAnalysis
	aux := struct {
		*alias
		KappaMax     jsonFloat `json:"kappa_max"`
		KappaSum     jsonFloat `json:"kappa_sum"`
		Delta        jsonFloat `json:"delta"`
		ForwardMean  jsonFloat `json:"forward_mean"`
		BackwardMean jsonFloat `json:"backward_mean"`
		ISI          jsonFloat `json:"isi"`
		ISIExp       jsonFloat `json:"isi_exp"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	a.KappaMax = float64(aux.KappaMax)
	a.KappaSum = float64(aux.KappaSum)
	a.Delta = float64(aux.Delta)
	a.ForwardMean = float64(aux.ForwardMean)
	a.BackwardMean = float64(aux.BackwardMean)
	a.ISI = float64(aux.ISI)
	a.ISIExp = float64(aux.ISIExp)
	return nil
}

func (p StabilityPoint) MarshalJSON() ([]byte, error) {
	type alias StabilityPoint
	return json.Marshal(struct {
		alias
		LambdaMean     jsonFloat `json:"lambda_mean"`
		LambdaStd      jsonFloat `json:"lambda_std"`
		LambdaCV       jsonFloat `json:"lambda_cv"`
		KappaMean      jsonFloat `json:"kappa_mean"`
		KappaStd       jsonFloat `json:"kappa_std"`
		FitQualityMean jsonFloat `json:"fit_quality_mean"`
		FitQualityStd  jsonFloat `json:"fit_quality_std"`
	}{alias(p), jsonFloat(p.LambdaMean), jsonFloat(p.LambdaStd), jsonFloat(p.LambdaCV), jsonFloat(p.KappaMean), jsonFloat(p.KappaStd), jsonFloat(p.FitQualityMean), jsonFloat(p.FitQualityStd)})
}

func (p *StabilityPoint) UnmarshalJSON(b []byte) error {
	type alias StabilityPoint
	aux := struct {
		*alias
		LambdaMean     jsonFloat `json:"lambda_mean"`
		LambdaStd      jsonFloat `json:"lambda_std"`
		LambdaCV       jsonFloat `json:"lambda_cv"`
		KappaMean      jsonFloat `json:"kappa_mean"`
		KappaStd       jsonFloat `json:"kappa_std"`
		FitQualityMean jsonFloat `json:"fit_quality_mean"`
		FitQualityStd  jsonFloat `json:"fit_quality_std"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.LambdaMean = float64(aux.LambdaMean)
	p.LambdaStd = float64(aux.LambdaStd)
	p.LambdaCV = float64(aux.LambdaCV)
	p.KappaMean = float64(aux.KappaMean)
	p.KappaStd = float64(aux.KappaStd)
	p.FitQualityMean = float64(aux.FitQualityMean)
	p.FitQualityStd = float64(aux.FitQualityStd)
	return nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal(struct {
		alias
		ShannonEntropy   jsonFloat `json:"shannon_entropy"`
		MutualInfo       jsonFloat `json:"mutual_info"`
		KLDivergence     jsonFloat `json:"kl_divergence"`
		AvgClauses       jsonFloat `json:"avg_clauses"`
		IntraClauseCoh   jsonFloat `json:"intra_clause_coh"`
		InterClauseCoh   jsonFloat `json:"inter_clause_coh"`
		OrderSensitivity jsonFloat `json:"order_sensitivity"`
	}{alias(r), jsonFloat(r.ShannonEntropy), jsonFloat(r.MutualInfo), jsonFloat(r.KLDivergence), jsonFloat(r.AvgClauses), jsonFloat(r.IntraClauseCoh), jsonFloat(r.InterClauseCoh), jsonFloat(r.OrderSensitivity)})
}

func (r *Result) UnmarshalJSON(b []byte) error {
	type alias Result
	aux := struct {
		*alias
		ShannonEntropy   jsonFloat `json:"shannon_entropy"`
		MutualInfo       jsonFloat `json:"mutual_info"`
		KLDivergence     jsonFloat `json:"kl_divergence"`
		AvgClauses       jsonFloat `json:"avg_clauses"`
		IntraClauseCoh   jsonFloat `json:"intra_clause_coh"`
		InterClauseCoh   jsonFloat `json:"inter_clause_coh"`
		OrderSensitivity jsonFloat `json:"order_sensitivity"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.ShannonEntropy = float64(aux.ShannonEntropy)
	r.MutualInfo = float64(aux.MutualInfo)
	r.KLDivergence = float64(aux.KLDivergence)
	r.AvgClauses = float64(aux.AvgClauses)
	r.IntraClauseCoh = float64(aux.IntraClauseCoh)
	r.InterClauseCoh = float64(aux.InterClauseCoh)
	r.OrderSensitivity = float64(aux.OrderSensitivity)
	return nil
}
