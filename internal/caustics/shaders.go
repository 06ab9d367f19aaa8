package caustics

const patternVertexShader = `#version 410 core
out vec2 vUV;

void main() {
    vec2 pos = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
    vUV = pos;
    gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
`

// Same formula as Pattern.Sample.
const patternFragmentShader = `#version 410 core
in vec2 vUV;
out vec4 FragColor;

uniform float uTime;
uniform float uScale;
uniform float uSpeed;
uniform float uIntensity;
uniform int uIterations;

const float TAU = 6.28318530718;

void main() {
    float t = uTime * uSpeed + 23.0;
    vec2 p = mod(vUV * uScale * TAU, TAU) - 250.0;
    vec2 i = p;
    float c = 1.0;
    float inten = 0.005;
    int iters = max(uIterations, 1);

    for (int n = 0; n < iters; n++) {
        float tn = t * (1.0 - 3.5 / float(n + 1));
        i = p + vec2(cos(tn - i.x) + sin(tn + i.y), sin(tn - i.y) + cos(tn + i.x));
        c += 1.0 / length(vec2(p.x / (sin(i.x + tn) / inten), p.y / (cos(i.y + tn) / inten)));
    }
    c /= float(iters);
    c = 1.17 - pow(c, 1.4);
    float v = clamp(pow(abs(c), 8.0) * uIntensity, 0.0, 1.0);
    FragColor = vec4(vec3(v), 1.0);
}
`
