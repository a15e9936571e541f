// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/kernelmetrics/internal/group"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// writeGroup writes files into a fresh work directory and forms the group
// of main.
func writeGroup(t *testing.T, main string, files map[string]string) *types.FileGroup {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	g, err := group.Form(dir, main)
	require.NoError(t, err)
	return g
}

const splitMain = `#include "localmemscr.h"
void hgp_os_eri_p_s_s_s(const UInt& inp2, const Double* icoe, LocalMemScr& scr)
{
  // initialize the results
  Double* abcd = scr.getNewMemPos(12);
  Double I_ERI_S = 0.0E0;

  for(UInt ip2=0; ip2<inp2; ip2++) {
    Double ic2 = icoe[ip2];
    Double onedz = ONE/zeta;
    for(UInt jp2=0; jp2<jnp2; jp2++) {
      Double rho = zeta*eta/(zeta+eta);

      /************************************************************
       * totally 3 integrals are omitted 
       ************************************************************/
      hgp_os_eri_p_s_s_s_vrr(PAX,PAY,PAZ,I_ERI_S);
    }
  }

  /************************************************************
   * initilize the HRR steps : build the AB/CD variables
   ************************************************************/
  Double ABX = A[0] - B[0];
  hgp_os_eri_p_s_s_s_hrr(ABX,abcd);
}
`

const splitVRR = `#include "general.h"
void hgp_os_eri_p_s_s_s_vrr(const Double& PAX, Double& I_ERI_Px_S)
{
  // totally 2 integrals are omitted
  Double I_ERI_S_M1 = PAX*I_ERI_S;
#ifdef WITH_SINGLE_PRECISION
  Double tmp = 2.0f*PAX-1.0f;
#else
  Double tmp = 2.0E0*PAX-1.0E0;
#endif
  I_ERI_Px_S = tmp+I_ERI_S_M1;
}
`

const splitHRR = `void hgp_os_eri_p_s_s_s_hrr(const Double& ABX, Double* abcd)
{
  // totally 4 integrals are omitted
  DoubleVec I_ERI_Px_S_C(3,0.0E0);
  abcd[0] = I_ERI_Px_S_C[0]+ABX*I_ERI_S;
  abcd[1] = I_ERI_Px_S_C[1]-ABX/2.0E0;
}
`

func splitGroup(t *testing.T) *types.FileGroup {
	t.Helper()
	return writeGroup(t, "hgp_os_eri_p_s_s_s.cpp", map[string]string{
		"hgp_os_eri_p_s_s_s.cpp":     splitMain,
		"hgp_os_eri_p_s_s_s_vrr.cpp": splitVRR,
		"hgp_os_eri_p_s_s_s_hrr.cpp": splitHRR,
	})
}

// espMain has a grid loop, two scalar declarations with three +/- in the
// pair-level loop, and five +/- in the quartet-level loop.
const espMain = `void hgp_os_esp_p_s(const UInt& nGrids, const Double* R, Double* abcd)
{
  for(UInt iGrid=0; iGrid<nGrids; iGrid++) {
    for (auto& pair : pairs) {
      Double a = x+y;
      Double b = a-z+w;
      // shell quartet name: SQ_ESP_P_S
      for (auto& quartet : quartets) {
        out = a+b+c-d+e-f;
      }
    }
  }
}
`

// espPostMain is a grid kernel with preamble declarations inside the grid
// loop and a post section after the core region.
const espPostMain = `void hgp_os_esp_p_s(const UInt& nGrids, const Double* R, Double* abcd)
{
  for(UInt iGrid=0; iGrid<nGrids; iGrid++) {
    Double PRX = R[0];
    DoubleVec I_ESP_P(4,0.0E0);
    for (auto& pair : pairs) {
      Double a = x+y;
      // shell quartet name: SQ_ESP_P_S
      out = a+b;
    }
    // initilize the HRR steps : contract the grid results
    abcd[iGrid] = I_ESP_P[0]*PRX-a;
  }
}
`
