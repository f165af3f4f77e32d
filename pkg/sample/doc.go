// Package sample describes a layered sample for reflectometry: materials,
// layers and assemblies of layers stacked between two semi-infinite media.
//
// Every numeric attribute is a *param.Parameter so a minimizer can vary it.
// Thickness and roughness parameters are bounded below by zero; invalid values
// are rejected when they are set, never at calculation time.
//
// Units: thickness and roughness in angstrom, scattering length density in
// 1e-6 Å⁻² (silicon is 2.07).
//
// A Sample flattens to a list of Slab values consumed by the calculator.
// Slab lists always start with the super-phase and end with the sub-phase.
package sample
